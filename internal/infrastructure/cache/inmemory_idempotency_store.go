package cache

import (
	"context"
	"sync"
	"time"

	"github.com/preorder/backend/internal/domain/shared"
)

const sweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore maps keys to their expiry. Expired keys behave as
// absent and are swept periodically until Close.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	expires map[string]time.Time

	stop context.CancelFunc
	done chan struct{}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

// NewInMemoryIdempotencyStore starts an empty store and its sweeper.
// Callers must Close it to stop the sweeper goroutine.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	ctx, cancel := context.WithCancel(context.Background())
	s := &InMemoryIdempotencyStore{
		expires: map[string]time.Time{},
		stop:    cancel,
		done:    make(chan struct{}),
	}
	go s.sweepUntil(ctx)
	return s
}

func (s *InMemoryIdempotencyStore) live(key string, now time.Time) bool {
	exp, ok := s.expires[key]
	return ok && now.Before(exp)
}

// MarkProcessed claims key for ttl. It reports false when the key is already
// held and unexpired, leaving the existing expiry untouched.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, key string, ttl time.Duration) (bool, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live(key, now) {
		return false, nil
	}
	s.expires[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether key is held and unexpired.
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(key, time.Now()), nil
}

// Forget releases key so the next MarkProcessed succeeds. Unknown keys are ignored.
func (s *InMemoryIdempotencyStore) Forget(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.expires, key)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. Calling it again is harmless.
func (s *InMemoryIdempotencyStore) Close() error {
	s.stop()
	<-s.done
	return nil
}

// Len counts stored keys, including expired ones not yet swept.
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expires)
}

func (s *InMemoryIdempotencyStore) sweepUntil(ctx context.Context) {
	defer close(s.done)
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(now)
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.expires {
		if !s.live(key, now) {
			delete(s.expires, key)
		}
	}
}
