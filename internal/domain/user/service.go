// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/notify"
)

const (
	msgRegistered  = "Registered successfully"
	msgLoggedIn    = "Logged in successfully"
	msgLoggedOut   = "Logged out"
	msgUnreachable = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
)

var (
	// ErrLoginFailed is returned when the backend answered a login without a credential
	ErrLoginFailed = errors.New("login failed")
	// ErrNotLoggedIn is returned by operations that need a session when there is none
	ErrNotLoggedIn = errors.New("not logged in")
)

// Service handles registration, login and logout
type Service struct {
	api      backend.Requester
	sessions *auth.SessionManager
	notifier notify.Notifier
	logger   *logrus.Logger
}

// NewService creates a new user service
func NewService(api backend.Requester, sessions *auth.SessionManager, notifier notify.Notifier, logger *logrus.Logger) *Service {
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

// Register creates an account (POST /auth/register)
func (s *Service) Register(ctx context.Context, form RegisterForm) error {
	if err := ValidateRegistration(form); err != nil {
		s.notifier.Notify(notify.Warning, err.Error())
		return err
	}

	req := credentialsRequest{Username: form.Username, Password: form.Password}
	if err := s.api.Post(ctx, "/auth/register", "", req, nil); err != nil {
		s.reportBadRequest(err)
		return fmt.Errorf("failed to register: %w", err)
	}

	s.logger.WithField("username", form.Username).Info("user registered")
	s.notifier.Notify(notify.Success, msgRegistered)
	return nil
}

// Login authenticates (POST /auth/login) and persists the resulting session
func (s *Service) Login(ctx context.Context, form LoginForm) (*auth.Session, error) {
	if err := ValidateLogin(form); err != nil {
		s.notifier.Notify(notify.Warning, err.Error())
		return nil, err
	}

	var resp loginResponse
	req := credentialsRequest{Username: form.Username, Password: form.Password}
	if err := s.api.Post(ctx, "/auth/login", "", req, &resp); err != nil {
		s.reportBadRequest(err)
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if resp.Token == "" {
		s.notifier.Notify(notify.Error, msgUnreachable)
		return nil, ErrLoginFailed
	}

	username := resp.Username
	if username == "" {
		username = form.Username
	}
	sess := &auth.Session{Token: resp.Token, Username: username, Balance: resp.Balance}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.notifier.Notify(notify.Error, "Could not save the login on this device")
		return nil, err
	}

	s.logger.WithField("username", username).Info("user logged in")
	s.notifier.Notify(notify.Success, msgLoggedIn)
	return sess, nil
}

// Logout tears down the persisted session
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		s.notifier.Notify(notify.Error, "Could not clear the login on this device")
		return err
	}
	s.notifier.Notify(notify.Info, msgLoggedOut)
	return nil
}

// Current returns the persisted session, nil when logged out
func (s *Service) Current(ctx context.Context) (*auth.Session, error) {
	return s.sessions.Current(ctx)
}

// UpdateBalance persists a new wallet balance for the current session
func (s *Service) UpdateBalance(ctx context.Context, sess *auth.Session) error {
	return s.sessions.Save(ctx, sess)
}

func (s *Service) reportBadRequest(err error) {
	if apiErr, ok := backend.AsAPIError(err); ok && apiErr.Status == http.StatusBadRequest && apiErr.HasMessage() {
		s.notifier.Notify(notify.Error, apiErr.Message)
		return
	}
	s.notifier.Notify(notify.Error, msgUnreachable)
}
