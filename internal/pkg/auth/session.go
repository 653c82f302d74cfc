// internal/pkg/auth/session.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Keys under which the session is persisted, one value per key
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyBalance  = "balance"
)

// ErrKeyNotFound is returned by a KeyValueStore for a missing key
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the small persisted key-value surface the session lives in
type KeyValueStore interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Session is the authenticated identity handed explicitly to operations that need it
type Session struct {
	Token    string          `json:"token"`
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
}

// Authenticated reports whether the session carries a credential
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// SessionManager creates, loads and tears down the persisted session
type SessionManager struct {
	store  KeyValueStore
	logger *logrus.Logger
	now    func() time.Time
}

// NewSessionManager creates a session manager over store
func NewSessionManager(store KeyValueStore, logger *logrus.Logger) *SessionManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SessionManager{store: store, logger: logger, now: time.Now}
}

// Current returns the persisted session, or nil when nobody is logged in.
// An expired credential is cleared and treated as absent.
func (m *SessionManager) Current(ctx context.Context) (*Session, error) {
	token, err := m.get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	if TokenExpired(token, m.now()) {
		m.logger.Info("stored credential has expired, clearing session")
		if err := m.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	username, err := m.get(ctx, KeyUsername)
	if err != nil {
		return nil, err
	}
	rawBalance, err := m.get(ctx, KeyBalance)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	if rawBalance != "" {
		balance, err = decimal.NewFromString(rawBalance)
		if err != nil {
			m.logger.WithError(err).Warn("ignoring malformed stored balance")
			balance = decimal.Zero
		}
	}

	return &Session{Token: token, Username: username, Balance: balance}, nil
}

// Save persists the session
func (m *SessionManager) Save(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return fmt.Errorf("cannot persist a session without a credential")
	}
	values := map[string]string{
		KeyToken:    sess.Token,
		KeyUsername: sess.Username,
		KeyBalance:  sess.Balance.String(),
	}
	for _, key := range []string{KeyToken, KeyUsername, KeyBalance} {
		if err := m.store.Set(ctx, key, values[key]); err != nil {
			return fmt.Errorf("failed to persist session %s: %w", key, err)
		}
	}
	return nil
}

// Clear removes every persisted session key
func (m *SessionManager) Clear(ctx context.Context) error {
	if err := m.store.Del(ctx, KeyToken, KeyUsername, KeyBalance); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (m *SessionManager) get(ctx context.Context, key string) (string, error) {
	value, err := m.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session %s: %w", key, err)
	}
	return value, nil
}
