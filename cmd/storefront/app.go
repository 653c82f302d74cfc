package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/storefront"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/infrastructure/session"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/notify"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// app wires the services one command run needs
type app struct {
	store     session.Store
	sessions  *auth.SessionManager
	registry  *prometheus.Registry
	inbox     *notify.Inbox
	users     *user.Service
	addresses *user.AddressService
	receipts  *pdf.Service
	front     *storefront.Storefront
}

func newApp(cfg *config.Config, logger *logrus.Logger, out notify.Notifier) (*app, error) {
	store, err := session.NewStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	registry := prometheus.NewRegistry()
	client, err := backend.NewClient(cfg.Backend.Endpoint,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithLogger(logger),
		backend.WithMetrics(metrics.NewBackendMetrics(registry)),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	inbox := notify.NewInbox(100)
	notifier := notify.Multi(out, inbox)

	sessions := auth.NewSessionManager(store, logger)
	front := storefront.New(
		product.NewService(client, notifier, logger),
		cart.NewService(client, notifier, logger),
		checkout.NewService(client, sessions, notifier, logger),
		sessions,
		logger,
		storefront.Options{DebounceWindow: cfg.Search.DebounceWindow},
	)

	return &app{
		store:     store,
		sessions:  sessions,
		registry:  registry,
		inbox:     inbox,
		users:     user.NewService(client, sessions, notifier, logger),
		addresses: user.NewAddressService(client, notifier, logger),
		receipts:  pdf.NewService(cfg),
		front:     front,
	}, nil
}

// Close releases the session store
func (a *app) Close() error {
	a.front.CancelSearch()
	return a.store.Close()
}

// cliNotifier prints notifications as "variant: message" lines
func cliNotifier(w io.Writer) notify.Notifier {
	return notify.NotifierFunc(func(variant notify.Variant, message string) {
		fmt.Fprintf(w, "%s: %s\n", variant, message)
	})
}
