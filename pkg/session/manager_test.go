package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/umlstate/umlstate/pkg/domain"
	"github.com/umlstate/umlstate/pkg/ports"
	"github.com/umlstate/umlstate/pkg/session"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	data map[string]*domain.Snapshot
	mu   sync.Mutex
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string]*domain.Snapshot)
	}
	s.data[sessionID] = snap
	return nil
}

func (s *SlowStore) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	time.Sleep(10 * time.Millisecond) // Simulate IO
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.data[sessionID]; ok {
		return snap, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *SlowStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{}
	manager := session.NewManager(store)
	ctx := context.Background()
	id := "race-test"

	assert.NoError(t, manager.Save(ctx, id, domain.NewSnapshot("S1")))

	var wg sync.WaitGroup
	concurrentWrites := 10

	// Read-modify-write without locking would lose updates; WithLock must
	// serialize them.
	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.WithLock(ctx, id, func(ctx context.Context) error {
				snap, err := store.Load(ctx, id)
				if err != nil {
					return err
				}
				count, _ := snap.Vars["count"].(int)
				snap.Vars["count"] = count + 1
				return store.Save(ctx, id, snap)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := manager.Load(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, concurrentWrites, snap.Vars["count"])
}

// countingLocker records Lock/Unlock pairs.
type countingLocker struct {
	mu      sync.Mutex
	locks   int
	unlocks int
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	l.locks++
	l.mu.Unlock()
	return func(ctx context.Context) error {
		l.mu.Lock()
		l.unlocks++
		l.mu.Unlock()
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	manager := session.NewManager(&SlowStore{}, session.WithLocker(locker))
	ctx := context.Background()

	assert.NoError(t, manager.Save(ctx, "a", domain.NewSnapshot("S1")))
	_, err := manager.Load(ctx, "a")
	assert.NoError(t, err)

	assert.Equal(t, 2, locker.locks)
	assert.Equal(t, 2, locker.unlocks)
}
