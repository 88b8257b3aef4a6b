package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "github.com/umlstate/umlstate/internal/adapters/redis"
)

func newLockerClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestLocker_AcquireAndRelease(t *testing.T) {
	mr, client := newLockerClient(t)
	locker := redisadapter.NewLocker(client, "umlstate:session:")

	ctx := context.Background()
	unlock, err := locker.Lock(ctx, "sess-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("umlstate:session:lock:sess-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("umlstate:session:lock:sess-1"))
}

func TestLocker_BlocksUntilReleased(t *testing.T) {
	_, client := newLockerClient(t)
	locker := redisadapter.NewLocker(client, "umlstate:session:")

	ctx := context.Background()
	unlock, err := locker.Lock(ctx, "sess-1", time.Minute)
	require.NoError(t, err)

	// A second acquire on the same key must not succeed while held.
	blockedCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blockedCtx, "sess-1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	unlock2, err := locker.Lock(ctx, "sess-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_IndependentKeys(t *testing.T) {
	_, client := newLockerClient(t)
	locker := redisadapter.NewLocker(client, "umlstate:session:")

	ctx := context.Background()
	unlockA, err := locker.Lock(ctx, "a", time.Minute)
	require.NoError(t, err)
	unlockB, err := locker.Lock(ctx, "b", time.Minute)
	require.NoError(t, err)

	require.NoError(t, unlockA(ctx))
	require.NoError(t, unlockB(ctx))
}
