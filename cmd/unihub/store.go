// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/campusware/unihub/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local resource catalog (init, stats, export)",
}

var storeInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the catalog database, optionally loading a YAML seed file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := portalConfig()

		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		seedFile, _ := cmd.Flags().GetString("seed")
		if seedFile != "" {
			n, err := st.Seed(cmd.Context(), seedFile, os.Stderr)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d resource(s)\n", n)
		}
		fmt.Println("catalog initialized")
		return nil
	},
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print catalog counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := portalConfig()

		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.CatalogStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("resources: %d (%d imported)\n", stats.Resources, stats.Imported)
		fmt.Printf("ratings:   %d\n", stats.Ratings)

		kinds := make([]string, 0, len(stats.ByType))
		for k := range stats.ByType {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Printf("  %-10s %d\n", k, stats.ByType[k])
		}
		return nil
	},
}

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full catalog to stdout as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := portalConfig()

		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		return st.ExportYAML(cmd.Context(), os.Stdout)
	},
}

func init() {
	storeInitCmd.Flags().String("seed", "", "YAML file of resources to load")

	storeCmd.AddCommand(storeInitCmd)
	storeCmd.AddCommand(storeStatsCmd)
	storeCmd.AddCommand(storeExportCmd)
	rootCmd.AddCommand(storeCmd)
}
