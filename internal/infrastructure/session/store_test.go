package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const secret = "0123456789abcdef0123"

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path, nil)

	_, err := store.Get(ctx, auth.KeyToken)
	assert.ErrorIs(t, err, auth.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, auth.KeyToken, "token-value"))
	require.NoError(t, store.Set(ctx, auth.KeyUsername, "crio.user"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"token-value","username":"crio.user"}`, string(raw))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewFileStore(path, nil)
	value, err := reopened.Get(ctx, auth.KeyUsername)
	require.NoError(t, err)
	assert.Equal(t, "crio.user", value)

	require.NoError(t, store.Del(ctx, auth.KeyToken, auth.KeyUsername))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreSealed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	sealer, err := auth.NewSealer(secret)
	require.NoError(t, err)

	store := NewFileStore(path, sealer)
	require.NoError(t, store.Set(ctx, auth.KeyToken, "token-value"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "token-value")

	value, err := store.Get(ctx, auth.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-value", value)

	other, err := auth.NewSealer("a-completely-different-secret")
	require.NoError(t, err)
	_, err = NewFileStore(path, other).Get(ctx, auth.KeyToken)
	assert.ErrorIs(t, err, auth.ErrUnseal)
}

func TestNewStoreFile(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{
		Store:  "file",
		File:   filepath.Join(t.TempDir(), "session.json"),
		Secret: secret,
	}}

	store, err := NewStore(cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	manager := auth.NewSessionManager(store, nil)
	ctx := context.Background()
	require.NoError(t, manager.Save(ctx, &auth.Session{Token: "t", Username: "crio.user", Balance: decimal.NewFromInt(5000)}))

	sess, err := manager.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "crio.user", sess.Username)
}

func TestNewStoreSQL(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{
		Store:    "sql",
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(t.TempDir(), "sessions.db"),
	}}

	store, err := NewStore(cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, auth.KeyToken, "t"))
	value, err := store.Get(ctx, auth.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "t", value)
}

func TestNewStoreUnknown(t *testing.T) {
	_, err := NewStore(&config.Config{Session: config.SessionConfig{Store: "etcd"}}, nil)
	assert.Error(t, err)
}
