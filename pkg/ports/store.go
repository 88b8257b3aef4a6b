package ports

import (
	"context"
	"time"

	"github.com/umlstate/umlstate/pkg/domain"
)

// SessionStore defines the interface for persisting machine session
// snapshots. This allows for durable sessions, enabling "stop & resume"
// across processes.
type SessionStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session IDs.
	List(ctx context.Context) ([]string, error)
}

// UnlockFunc releases a previously acquired lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes session access across processes sharing
// one session store.
type DistributedLocker interface {
	// Lock acquires the lock for key, blocking until acquired or ctx is
	// done. The TTL bounds how long a crashed holder keeps the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
