package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	httpserver "github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
)

// serveCmd runs the local view server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront page state as a local JSON API",
	Long: `Serve the storefront page state as a local JSON API on APP_PORT.

The catalog and cart are loaded once at startup, like a page load. Search
input posted to /api/search is debounced by SEARCH_DEBOUNCE; notifications
are collected at /api/notifications and backend call metrics at /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	if err := st.front.Load(ctx); err != nil {
		log.WithError(err).Warn("initial page load failed, serving an empty catalog")
	}
	cancel()

	server := httpserver.NewServer(cfg, routes.Dependencies{
		Storefront: st.front,
		Users:      st.users,
		Addresses:  st.addresses,
		Receipts:   st.receipts,
		Inbox:      st.inbox,
		Logger:     log,
	}, st.registry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	return server.Stop(shutdownCtx)
}
