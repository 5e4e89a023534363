package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"deenha/internal/apperrors"
	"deenha/internal/models"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProductLister lists every product ordered by id ascending.
type ProductLister interface {
	List(ctx context.Context) ([]models.Product, error)
}

// PostLister lists the newest feed posts ordered by id descending.
type PostLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.InstagramPost, error)
}

// LoadState is one of Loading, Failed or Ready.
type LoadState interface {
	loadState()
}

// Loading means no load has finished yet.
type Loading struct{}

// Failed means the latest load failed. Stale holds the snapshot that is
// still being served, which is empty if nothing ever loaded.
type Failed struct {
	Reason string
	Stale  Catalog
}

// Ready means the latest load succeeded.
type Ready struct {
	Catalog Catalog
}

func (Loading) loadState() {}
func (Failed) loadState()  {}
func (Ready) loadState()   {}

// Option configures a Store.
type Option func(*Store)

// WithFeedLimit bounds the number of feed posts loaded.
func WithFeedLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.feedLimit = n
		}
	}
}

// WithRetry retries a failed load up to attempts times in total with
// exponential backoff starting at interval.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(s *Store) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if interval > 0 {
			s.interval = interval
		}
	}
}

// Store holds the current catalog snapshot.
type Store struct {
	products  ProductLister
	posts     PostLister
	logger    *zap.Logger
	feedLimit int
	attempts  int
	interval  time.Duration

	group     singleflight.Group
	requested atomic.Uint64

	mu       sync.RWMutex
	snapshot Catalog
	loaded   bool
	state    LoadState
}

// NewStore creates an empty store. Nothing is fetched until Refresh.
func NewStore(products ProductLister, posts PostLister, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		products:  products,
		posts:     posts,
		logger:    logger,
		feedLimit: 6,
		attempts:  1,
		interval:  200 * time.Millisecond,
		snapshot:  Catalog{Products: []Product{}, Posts: []Post{}},
		state:     Loading{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches a fresh catalog without touching the current snapshot.
func (s *Store) Load(ctx context.Context) (Catalog, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.interval

	attempt := 0
	op := func() (Catalog, error) {
		attempt++
		c, err := s.fetch(ctx)
		if err != nil && attempt < s.attempts {
			s.logger.Warn("catalog load failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		}
		return c, err
	}

	c, err := backoff.Retry(ctx, op, backoff.WithBackOff(b), backoff.WithMaxTries(uint(s.attempts)))
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog: %w: %w", apperrors.ErrLoadFailure, err)
	}
	return c, nil
}

func (s *Store) fetch(ctx context.Context) (Catalog, error) {
	rows, err := s.products.List(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("list products: %w", err)
	}
	posts, err := s.posts.ListRecent(ctx, s.feedLimit)
	if err != nil {
		return Catalog{}, fmt.Errorf("list feed posts: %w", err)
	}

	c := Catalog{
		Products: make([]Product, 0, len(rows)),
		Posts:    make([]Post, 0, len(posts)),
		LoadedAt: time.Now().UTC(),
	}
	for _, r := range rows {
		c.Products = append(c.Products, FromRecord(r))
	}
	for _, p := range posts {
		c.Posts = append(c.Posts, FromPostRecord(p))
	}
	return c, nil
}

// Refresh reloads the catalog and swaps the snapshot in only on success.
// Calls made while a refresh is running share it only if that load
// started after the call was made. Otherwise they wait for it to finish
// and run a fresh load, so a refresh issued after a write always sees
// the write.
func (s *Store) Refresh(ctx context.Context) error {
	want := s.requested.Add(1)
	for {
		v, err, shared := s.group.Do("refresh", func() (interface{}, error) {
			started := s.requested.Load()
			c, err := s.Load(ctx)

			s.mu.Lock()
			defer s.mu.Unlock()
			if err != nil {
				s.state = Failed{Reason: err.Error(), Stale: s.snapshot}
				return started, err
			}
			s.snapshot = c
			s.loaded = true
			s.state = Ready{Catalog: c}
			return started, nil
		})
		if started, _ := v.(uint64); started < want {
			continue
		}
		if err != nil {
			s.logger.Error("catalog refresh failed", zap.Error(err), zap.Bool("shared", shared))
			return err
		}
		s.logger.Debug("catalog refreshed", zap.Bool("shared", shared))
		return nil
	}
}

// Current returns the last successfully loaded snapshot.
func (s *Store) Current() Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Loaded reports whether at least one load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// State returns the outcome of the latest load.
func (s *Store) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// View derives a filtered, sorted view from the current snapshot.
func (s *Store) View(criteria Criteria, key SortKey) View {
	s.mu.RLock()
	c, loaded := s.snapshot, s.loaded
	s.mu.RUnlock()
	return NewView(c, loaded, criteria, key)
}

// StateName returns a short label for a load state.
func StateName(st LoadState) string {
	switch st.(type) {
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}
