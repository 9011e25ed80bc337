// Package memstore is an in-process key-value store with the same contract
// as the redis repository. It backs single-instance deployments and tests.
package memstore

import (
	"context"
	"personas-web/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const DefaultJanitorInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type Store struct {
	mu      sync.Mutex
	items   map[string]entry
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
	closeMu sync.Once
}

// NewStore starts a janitor that drops expired keys every interval. Call
// Close to stop it.
func NewStore(interval time.Duration) *Store {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	s := &Store{
		items: make(map[string]entry),
		now:   time.Now,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.janitor(interval)
	return s
}

func (s *Store) Close() error {
	s.closeMu.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", exceptions.ErrRedisGet(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key), nil
}

func (s *Store) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	if err := ctx.Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, string(jsonValue), exp)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *Store) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getLocked(key) != "" {
		return false, nil
	}
	s.setLocked(key, string(jsonValue), exp)
	return true, nil
}

// Update holds the store lock while fn runs, so fn must not call back into
// the store.
func (s *Store) Update(ctx context.Context, key string, exp time.Duration, fn func(current string) (string, error)) error {
	if err := ctx.Err(); err != nil {
		return exceptions.ErrRedisUpdate(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.getLocked(key))
	if err != nil {
		return err
	}
	s.setLocked(key, next, exp)
	return nil
}

// Len counts live keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	count := 0
	for _, e := range s.items {
		if !e.expired(now) {
			count++
		}
	}
	return count
}

func (s *Store) getLocked(key string) string {
	e, ok := s.items[key]
	if !ok {
		return ""
	}
	if e.expired(s.now()) {
		delete(s.items, key)
		return ""
	}
	return e.value
}

func (s *Store) setLocked(key, value string, exp time.Duration) {
	e := entry{value: value}
	if exp > 0 {
		e.expiresAt = s.now().Add(exp)
	}
	s.items[key] = e
}

func (s *Store) janitor(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.deleteExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) deleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.items {
		if e.expired(now) {
			delete(s.items, key)
		}
	}
}
