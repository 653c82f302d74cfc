package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/auth"
)

type setCall struct {
	key string
	ttl time.Duration
}

type mockCmdable struct {
	data     map[string]string
	setCalls []setCall
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.setCalls = append(m.setCalls, setCall{key: key, ttl: expiration})
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestClientImplementsSessionStore(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock, namespace: keyPrefix + "test:", ttl: time.Hour}

	require.NoError(t, client.Set(ctx, auth.KeyToken, "token-value"))
	assert.Equal(t, "token-value", mock.data["storefront:session:test:token"])
	require.Len(t, mock.setCalls, 1)
	assert.Equal(t, time.Hour, mock.setCalls[0].ttl)

	value, err := client.Get(ctx, auth.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-value", value)

	require.NoError(t, client.Del(ctx, auth.KeyToken))
	_, err = client.Get(ctx, auth.KeyToken)
	assert.ErrorIs(t, err, auth.ErrKeyNotFound)
}

func TestSessionManagerOverRedis(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable(), namespace: keyPrefix + "test:"}
	manager := auth.NewSessionManager(client, nil)

	sess := &auth.Session{Token: "token-value", Username: "crio.user", Balance: decimal.NewFromInt(5000)}
	require.NoError(t, manager.Save(ctx, sess))

	loaded, err := manager.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "crio.user", loaded.Username)
	assert.True(t, sess.Balance.Equal(loaded.Balance))

	require.NoError(t, manager.Clear(ctx))
	loaded, err = manager.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestHealth(t *testing.T) {
	client := &Client{store: newMockCmdable()}
	assert.NoError(t, client.Health(context.Background()))
	assert.NoError(t, client.Close())
}
