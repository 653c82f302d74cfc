// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const (
	msgEmptyCart           = "Cart is empty"
	msgInsufficientBalance = "You do not have enough balance in your wallet for this purchase"
	msgAddressRequired     = "Please select one shipping address to proceed."
	msgLoginRequired       = "Login to place an order"
	msgOrderPlaced         = "Order placed successfully!"
	msgCheckoutFailed      = "Couldn't place the order. Check that the backend is running, reachable and returns valid JSON."
)

var (
	ErrLoginRequired       = errors.New("login required")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrAddressRequired     = errors.New("shipping address required")
)

// Summary is the read-only order details block
type Summary struct {
	ProductCount int             `json:"productCount"`
	SubTotal     decimal.Decimal `json:"subTotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Total        decimal.Decimal `json:"total"`
}

// Order is what a successful checkout leaves behind
type Order struct {
	AddressID string          `json:"addressId"`
	Items     []cart.LineItem `json:"items"`
	Summary   Summary         `json:"summary"`
	Balance   decimal.Decimal `json:"balance"`
}

type checkoutRequest struct {
	AddressID string `json:"addressId"`
}

// SessionSaver persists the session after the wallet balance changes
type SessionSaver interface {
	Save(ctx context.Context, sess *auth.Session) error
}

// Service places orders against the remote cart
type Service struct {
	api      backend.Requester
	sessions SessionSaver
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewService creates a new checkout service
func NewService(api backend.Requester, sessions SessionSaver, notifier notify.Notifier, logger *logrus.Logger) *Service {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
}

// Summarize computes the order details for items. Shipping is always free.
func Summarize(items []cart.LineItem) Summary {
	subTotal := cart.TotalValue(items)
	return Summary{
		ProductCount: cart.TotalQuantity(items),
		SubTotal:     subTotal,
		ShippingCost: decimal.Zero,
		Total:        subTotal,
	}
}

// Validate runs the local checks that precede POST /cart/checkout
func (s *Service) Validate(sess *auth.Session, items []cart.LineItem, addressID string) error {
	if !sess.Authenticated() {
		s.notifier.Notify(notify.Warning, msgLoginRequired)
		return ErrLoginRequired
	}
	if len(items) == 0 {
		s.notifier.Notify(notify.Warning, msgEmptyCart)
		return ErrEmptyCart
	}
	if Summarize(items).Total.GreaterThan(sess.Balance) {
		s.notifier.Notify(notify.Warning, msgInsufficientBalance)
		return ErrInsufficientBalance
	}
	if strings.TrimSpace(addressID) == "" {
		s.notifier.Notify(notify.Warning, msgAddressRequired)
		return ErrAddressRequired
	}
	return nil
}

// PlaceOrder checks out the cart to addressID. On success the session's
// balance is reduced by the order total and persisted.
func (s *Service) PlaceOrder(ctx context.Context, sess *auth.Session, items []cart.LineItem, addressID string) (*Order, error) {
	if err := s.Validate(sess, items, addressID); err != nil {
		return nil, err
	}

	summary := Summarize(items)
	if err := s.api.Post(ctx, "/cart/checkout", sess.Token, checkoutRequest{AddressID: addressID}, nil); err != nil {
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.HasMessage() && apiErr.Status < 500 {
			s.notifier.Notify(notify.Error, apiErr.Message)
		} else {
			s.notifier.Notify(notify.Error, msgCheckoutFailed)
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	sess.Balance = sess.Balance.Sub(summary.Total)
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, sess); err != nil {
			s.logger.WithError(err).Warn("order placed but the new balance could not be persisted")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"username":   sess.Username,
		"address_id": addressID,
		"total":      summary.Total.String(),
	}).Info("order placed")
	s.notifier.Notify(notify.Success, msgOrderPlaced)

	return &Order{
		AddressID: addressID,
		Items:     append([]cart.LineItem(nil), items...),
		Summary:   summary,
		Balance:   sess.Balance,
	}, nil
}
