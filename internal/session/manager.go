package session

import (
	"context"
	"sync"
	"time"

	"deenha/internal/cart"
	"deenha/internal/wishlist"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is one shopper's cart and wishlist. Lock it around every read
// or mutation.
type Session struct {
	sync.Mutex
	ID       string
	Cart     *cart.Cart
	Wishlist *wishlist.Set
	lastSeen time.Time
}

// Manager tracks live sessions in memory. Wishlists outlive a session
// through storage; carts do not.
type Manager struct {
	storage wishlist.Storage
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager(storage wishlist.Storage, logger *zap.Logger) *Manager {
	return &Manager{
		storage:  storage,
		logger:   logger,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// GetOrStart returns the session for id, starting a new one when id is
// empty or unknown. The returned bool is true for a new session.
func (m *Manager) GetOrStart(ctx context.Context, id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			s.lastSeen = m.now()
			return s, false
		}
	} else {
		id = uuid.NewString()
	}

	s := &Session{
		ID:       id,
		Cart:     cart.New(),
		Wishlist: wishlist.Load(ctx, m.storage, wishlist.Key(id), m.logger),
		lastSeen: m.now(),
	}
	log := m.logger.With(zap.String("session_id", id))
	s.Cart.OnChange(func(ev cart.Event) {
		log.Debug("cart changed",
			zap.String("kind", ev.Kind),
			zap.Int("count", ev.Count),
			zap.Int("total", ev.Total),
			zap.Bool("open", ev.Open),
		)
	})
	m.sessions[id] = s
	log.Debug("session started")
	return s, true
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// End drops the session. Its wishlist stays in storage.
func (m *Manager) End(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Sweep ends sessions idle for longer than maxIdle and returns how many
// were dropped.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-maxIdle)
	n := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.logger.Info("expired idle sessions", zap.Int("count", n))
	}
	return n
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
