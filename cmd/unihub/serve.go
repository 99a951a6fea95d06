// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusware/unihub/internal/authz"
	"github.com/campusware/unihub/internal/discovery"
	"github.com/campusware/unihub/internal/httpapi"
	"github.com/campusware/unihub/internal/importer"
	"github.com/campusware/unihub/internal/notify"
	"github.com/campusware/unihub/internal/provider"
	"github.com/campusware/unihub/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP API",
	Long: `Serve runs the resource discovery HTTP API: search across the local
catalog and external providers, resource detail, import, rating, and
engagement counters.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := portalConfig()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	client := httpClient(cfg.Search)
	providers := provider.Configured(client, cfg.Search)
	engine := discovery.New(st, providers, cfg.Search)
	imp := importer.New(st, &notify.Writer{W: os.Stderr})
	handler := httpapi.NewHandler(engine, st, imp, authz.MembershipChecker{}, os.Stderr)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: httpapi.NewRouter(handler, cfg.Server),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(os.Stderr, "listening on %s (%d providers)\n", cfg.Server.Addr, len(providers))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
