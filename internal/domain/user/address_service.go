// internal/domain/user/address_service.go
package user

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const msgAddressUnreachable = "Could not fetch addresses. Check that the backend is running, reachable and returns valid JSON."

// AddressService manages the saved shipping addresses of the logged-in user
type AddressService struct {
	api      backend.Requester
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewAddressService creates a new address service
func NewAddressService(api backend.Requester, notifier notify.Notifier, logger *logrus.Logger) *AddressService {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AddressService{
		api:      api,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the saved addresses (GET /user/addresses)
func (s *AddressService) List(ctx context.Context, sess *auth.Session) ([]Address, error) {
	if err := s.requireSession(sess); err != nil {
		return nil, err
	}
	var addresses []Address
	if err := s.api.Get(ctx, "/user/addresses", sess.Token, &addresses); err != nil {
		s.report(err)
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return nonNil(addresses), nil
}

// Add saves a new address (POST /user/addresses) and returns the updated list
func (s *AddressService) Add(ctx context.Context, sess *auth.Session, address string) ([]Address, error) {
	if err := s.requireSession(sess); err != nil {
		return nil, err
	}
	req := addressRequest{Address: strings.TrimSpace(address)}
	if err := firstProblem(validate.Struct(req)); err != nil {
		s.notifier.Notify(notify.Warning, err.Error())
		return nil, err
	}

	var addresses []Address
	if err := s.api.Post(ctx, "/user/addresses", sess.Token, req, &addresses); err != nil {
		s.report(err)
		return nil, fmt.Errorf("failed to add address: %w", err)
	}
	return nonNil(addresses), nil
}

// Delete removes an address (DELETE /user/addresses/:id) and returns the updated list
func (s *AddressService) Delete(ctx context.Context, sess *auth.Session, addressID string) ([]Address, error) {
	if err := s.requireSession(sess); err != nil {
		return nil, err
	}
	var addresses []Address
	if err := s.api.Delete(ctx, "/user/addresses/"+url.PathEscape(addressID), sess.Token, &addresses); err != nil {
		s.report(err)
		return nil, fmt.Errorf("failed to delete address: %w", err)
	}
	return nonNil(addresses), nil
}

func (s *AddressService) requireSession(sess *auth.Session) error {
	if !sess.Authenticated() {
		s.notifier.Notify(notify.Warning, "Login to manage addresses")
		return ErrNotLoggedIn
	}
	return nil
}

func (s *AddressService) report(err error) {
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.HasMessage() && apiErr.Status < 500 {
		s.notifier.Notify(notify.Error, apiErr.Message)
		return
	}
	s.notifier.Notify(notify.Error, msgAddressUnreachable)
}

func nonNil(addresses []Address) []Address {
	if addresses == nil {
		return []Address{}
	}
	return addresses
}
