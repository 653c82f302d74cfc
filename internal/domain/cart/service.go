// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const (
	msgLoginRequired    = "Login to add an item to the Cart"
	msgAlreadyInCart    = "Item already in cart. Use the cart sidebar to update quantity or remove item."
	msgNotInCart        = "Item is not in the cart"
	msgNegativeQuantity = "Quantity cannot be negative"
	msgFetchUnreachable = "Could not fetch cart details. Check that the backend is running, reachable and returns valid JSON."
	msgUpdateFailed     = "Couldn't update the cart. Check that the backend is running, reachable and returns valid JSON."
)

var (
	// ErrLoginRequired is returned when a cart operation runs without a credential
	ErrLoginRequired = errors.New("login required")
	// ErrAlreadyInCart is returned by a duplicate-preventing add for a product already in the cart
	ErrAlreadyInCart = errors.New("item already in cart")
	// ErrNotInCart is returned when decrementing a product that has no line item
	ErrNotInCart = errors.New("item not in cart")
	// ErrNegativeQuantity is returned for a target quantity below zero
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// MutateOptions tunes SetQuantity
type MutateOptions struct {
	// PreventDuplicate refuses to touch a product that already has a line item.
	// Used by the product card's add button, not by increment/decrement.
	PreventDuplicate bool
}

// Service fetches and mutates the remote cart and reconciles it against the catalog
type Service struct {
	api      backend.Requester
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewService creates a new cart service
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

// Fetch returns the backend's cart records (GET /cart). Without a credential
// no request is made and the cart is empty.
func (s *Service) Fetch(ctx context.Context, sess *auth.Session) ([]CartRecord, error) {
	if !sess.Authenticated() {
		return nil, nil
	}

	var records []CartRecord
	if err := s.api.Get(ctx, "/cart", sess.Token, &records); err != nil {
		apiErr, ok := backend.AsAPIError(err)
		if ok && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) && apiErr.HasMessage() {
			s.notifier.Notify(notify.Error, apiErr.Message)
		} else {
			s.notifier.Notify(notify.Error, msgFetchUnreachable)
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return records, nil
}

// Load fetches the cart and reconciles it. On failure the cart is empty.
func (s *Service) Load(ctx context.Context, sess *auth.Session, catalog *product.Catalog) ([]LineItem, error) {
	records, err := s.Fetch(ctx, sess)
	if err != nil {
		return []LineItem{}, err
	}
	return s.Reconcile(records, catalog), nil
}

// SetQuantity asks the backend to set productID's quantity to qty (an absolute
// value; 0 removes the line) and returns the reconciliation of the backend's
// answer. On any failure the given items are returned unchanged.
func (s *Service) SetQuantity(ctx context.Context, sess *auth.Session, items []LineItem, catalog *product.Catalog, productID string, qty int, opts MutateOptions) ([]LineItem, error) {
	if !sess.Authenticated() {
		s.notifier.Notify(notify.Warning, msgLoginRequired)
		return items, ErrLoginRequired
	}
	if opts.PreventDuplicate && Contains(items, productID) {
		s.notifier.Notify(notify.Warning, msgAlreadyInCart)
		return items, ErrAlreadyInCart
	}
	if qty < 0 {
		s.notifier.Notify(notify.Warning, msgNegativeQuantity)
		return items, ErrNegativeQuantity
	}

	var records []CartRecord
	err := s.api.Post(ctx, "/cart", sess.Token, upsertRequest{ProductID: productID, Qty: qty}, &records)
	if err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.HasMessage() && apiErr.Status < http.StatusInternalServerError {
			s.notifier.Notify(notify.Error, apiErr.Message)
		} else {
			s.notifier.Notify(notify.Error, msgUpdateFailed)
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"product_id": productID,
			"qty":        qty,
		}).Warn("cart update failed")
		return items, fmt.Errorf("failed to update cart: %w", err)
	}

	return s.Reconcile(records, catalog), nil
}

// AddToCart adds one unit of a product that is not yet in the cart
func (s *Service) AddToCart(ctx context.Context, sess *auth.Session, items []LineItem, catalog *product.Catalog, productID string) ([]LineItem, error) {
	return s.SetQuantity(ctx, sess, items, catalog, productID, 1, MutateOptions{PreventDuplicate: true})
}

// Increment sets productID's quantity to its current value plus one
func (s *Service) Increment(ctx context.Context, sess *auth.Session, items []LineItem, catalog *product.Catalog, productID string) ([]LineItem, error) {
	current, _ := Quantity(items, productID)
	return s.SetQuantity(ctx, sess, items, catalog, productID, current+1, MutateOptions{})
}

// Decrement sets productID's quantity to its current value minus one
func (s *Service) Decrement(ctx context.Context, sess *auth.Session, items []LineItem, catalog *product.Catalog, productID string) ([]LineItem, error) {
	current, ok := Quantity(items, productID)
	if !ok && sess.Authenticated() {
		s.notifier.Notify(notify.Warning, msgNotInCart)
		return items, ErrNotInCart
	}
	return s.SetQuantity(ctx, sess, items, catalog, productID, current-1, MutateOptions{})
}

// Reconcile merges records against catalog, logging any record whose product
// is missing from the catalog
func (s *Service) Reconcile(records []CartRecord, catalog *product.Catalog) []LineItem {
	items, orphans := ReconcileReport(records, catalog)
	if len(orphans) > 0 {
		s.logger.WithField("product_ids", orphans).Warn("cart references products missing from the catalog")
	}
	return items
}
