// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the unihub CLI: the HTTP API server
// plus terminal access to discovery, import, and catalog maintenance.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/campusware/unihub/internal/secrets"
	"github.com/campusware/unihub/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the unihub CLI.
var rootCmd = &cobra.Command{
	Use:   "unihub",
	Short: "University portal resource discovery backend",
	Long: `unihub serves the resource discovery and aggregation engine of the campus
portal: it searches the local resource catalog and external bibliographic
providers (Google Books, OpenAlex, arXiv) concurrently, and can import an
external candidate as a local resource.

Run the HTTP API with "unihub serve", or use search/import/store for the
same operations from the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./unihub.yaml or ~/.config/unihub/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the catalog database (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("unihub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "unihub"))
		}
	}

	viper.SetDefault("search.timeout", 10*time.Second)
	viper.SetDefault("search.user_agent", "unihub/"+version)
	viper.SetDefault("search.max_external_results", 10)
	viper.SetDefault("search.default_limit", 10)
	viper.SetDefault("search.provider_timeout", 8*time.Second)
	viper.SetDefault("search.enable_google_books", true)
	viper.SetDefault("search.enable_open_alex", true)
	viper.SetDefault("search.enable_arxiv", true)
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.allow_origins", []string{"*"})

	viper.SetEnvPrefix("UNIHUB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// portalConfig assembles the runtime configuration from the config file,
// environment, and loaded secrets.
func portalConfig() types.PortalConfig {
	cfg := types.PortalConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			MaxExternalResults: viper.GetInt("search.max_external_results"),
			DefaultLimit:       viper.GetInt("search.default_limit"),
			ProviderTimeout:    viper.GetDuration("search.provider_timeout"),
			EnableGoogleBooks:  viper.GetBool("search.enable_google_books"),
			EnableOpenAlex:     viper.GetBool("search.enable_open_alex"),
			EnableArxiv:        viper.GetBool("search.enable_arxiv"),
			GoogleBooksAPIKey:  secretDefault("google-books-api-key", viper.GetString("search.google_books_api_key")),
			OpenAlexEmail:      secretDefault("openalex-email", viper.GetString("search.open_alex_email")),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
		Server: types.ServerConfig{
			Addr:         viper.GetString("server.addr"),
			AllowOrigins: viper.GetStringSlice("server.allow_origins"),
		},
	}

	if dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir"); dataDir != "" {
		cfg.Store.DataDir = dataDir
	}
	return cfg
}

// httpClient returns the shared client for provider calls.
func httpClient(cfg types.SearchConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
