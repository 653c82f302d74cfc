// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const (
	msgCatalogUnreachable = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
	msgSearchUnreachable  = "Couldn't fetch the product. Check that the backend is running, reachable and returns valid JSON."
)

// Service fetches and searches the product catalog
type Service struct {
	api      backend.Requester
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewService creates a new product service
func NewService(api backend.Requester, notifier notify.Notifier, logger *logrus.Logger) *Service {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		api:      api,
		notifier: notifier,
		logger:   logger,
	}
}

// List fetches the full catalog (GET /products)
func (s *Service) List(ctx context.Context) (*Catalog, error) {
	var products []Product
	if err := s.api.Get(ctx, "/products", "", &products); err != nil {
		s.report(err, msgCatalogUnreachable)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.WithField("count", len(products)).Debug("catalog fetched")
	return NewCatalog(products), nil
}

// Search queries the catalog (GET /products/search?value=TEXT).
// A 404 means nothing matched: the result is empty and nothing is reported.
func (s *Service) Search(ctx context.Context, text string) ([]Product, error) {
	path := "/products/search?value=" + url.QueryEscape(text)

	var products []Product
	err := s.api.Get(ctx, path, "", &products)
	switch {
	case err == nil:
		if products == nil {
			products = []Product{}
		}
		return products, nil
	case backend.IsStatus(err, http.StatusNotFound):
		s.logger.WithField("query", text).Debug("search matched no products")
		return []Product{}, nil
	default:
		s.report(err, msgSearchUnreachable)
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
}

// report surfaces a 500's message verbatim and anything else as a connectivity problem
func (s *Service) report(err error, fallback string) {
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Status == http.StatusInternalServerError && apiErr.HasMessage() {
		s.notifier.Notify(notify.Error, apiErr.Message)
		return
	}
	s.notifier.Notify(notify.Error, fallback)
}
