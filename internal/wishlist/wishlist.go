package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"deenha/internal/apperrors"

	"go.uber.org/zap"
)

// StorageKey is the namespace the set is persisted under.
const StorageKey = "deenha-wishlist"

// Storage is a durable string key-value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key returns the storage key for a session.
func Key(sessionID string) string {
	if sessionID == "" {
		return StorageKey
	}
	return StorageKey + ":" + sessionID
}

// Set is a set of product ids mirrored to storage on every change.
// Storage errors never reach the caller; the set keeps working in memory.
type Set struct {
	ids      map[int]struct{}
	storage  Storage
	key      string
	logger   *zap.Logger
	degraded bool
}

// Load restores the set stored under key. Missing or malformed data gives
// an empty set.
func Load(ctx context.Context, storage Storage, key string, logger *zap.Logger) *Set {
	s := &Set{
		ids:     make(map[int]struct{}),
		storage: storage,
		key:     key,
		logger:  logger,
	}
	if storage == nil {
		return s
	}

	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		s.fail("read", err)
		return s
	}
	if !ok || raw == "" {
		return s
	}

	var stored []int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("discarding malformed wishlist", zap.String("key", key), zap.Error(err))
		return s
	}
	for _, id := range stored {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds id if absent, removes it otherwise, and reports whether it is
// now present.
func (s *Set) Toggle(ctx context.Context, id int) bool {
	_, present := s.ids[id]
	if present {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.persist(ctx)
	return !present
}

func (s *Set) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Count() int {
	return len(s.ids)
}

// All returns the ids in ascending order.
func (s *Set) All() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Degraded reports whether the last storage access failed.
func (s *Set) Degraded() bool {
	return s.degraded
}

func (s *Set) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, err := json.Marshal(s.All())
	if err != nil {
		s.fail("encode", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, string(raw), 0); err != nil {
		s.fail("write", err)
		return
	}
	s.degraded = false
}

func (s *Set) fail(op string, err error) {
	s.degraded = true
	err = fmt.Errorf("wishlist %s: %w: %w", op, apperrors.ErrStorageFailure, err)
	s.logger.Warn("wishlist storage unavailable", zap.String("key", s.key), zap.Error(err))
}
