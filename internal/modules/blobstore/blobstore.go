package blobstore

import (
	"context"
	"sync"
	"time"

	"pixelpage/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type entry struct {
	payload models.Payload
	added   time.Time
}

// Store holds fetched payloads in memory, keyed by generated ids. Stored
// payloads back the short-lived image URLs the page hands to browsers.
type Store struct {
	mu    sync.RWMutex
	ttl   time.Duration
	blobs map[string]entry
}

// New creates a Store. A ttl of zero disables expiry: blobs live until
// explicitly revoked.
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		blobs: make(map[string]entry),
	}
}

// Put stores p under a fresh id and returns the id.
func (s *Store) Put(p models.Payload) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.blobs[id] = entry{payload: p, added: time.Now()}
	s.mu.Unlock()
	return id
}

// Get returns the payload stored under id, if any.
func (s *Store) Get(id string) (models.Payload, bool) {
	s.mu.RLock()
	e, ok := s.blobs[id]
	s.mu.RUnlock()
	return e.payload, ok
}

// Revoke removes the payload stored under id. Revoking an unknown id is a
// no-op.
func (s *Store) Revoke(id string) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
}

// Len reports the number of stored blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Sweep runs until ctx is done, periodically reclaiming blobs older than
// the store's ttl. It returns immediately when expiry is disabled.
func (s *Store) Sweep(ctx context.Context, logger *zap.Logger) {
	if s.ttl <= 0 {
		return
	}

	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(time.Now()); n > 0 {
				logger.Debug("expired blobs reclaimed", zap.Int("count", n))
			}
		}
	}
}

func (s *Store) sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.blobs {
		if e.added.Before(cutoff) {
			delete(s.blobs, id)
			removed++
		}
	}
	return removed
}
