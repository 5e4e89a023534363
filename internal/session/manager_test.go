package session

import (
	"context"
	"testing"
	"time"

	"deenha/internal/catalog"
	"deenha/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetOrStart(t *testing.T) {
	m := NewManager(repositories.NewInMemoryKVStore(), zap.NewNop())
	ctx := context.Background()

	s, created := m.GetOrStart(ctx, "")
	require.True(t, created)
	assert.NotEmpty(t, s.ID)

	again, created := m.GetOrStart(ctx, s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	named, created := m.GetOrStart(ctx, "client-chosen")
	assert.True(t, created)
	assert.Equal(t, "client-chosen", named.ID)
	assert.Equal(t, 2, m.Len())
}

func TestCartChangesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m := NewManager(repositories.NewInMemoryKVStore(), zap.New(core))

	s, _ := m.GetOrStart(context.Background(), "sid-1")
	s.Cart.Add(catalog.Product{ID: 3, Price: 1000}, "M", "Black", 2)
	s.Cart.Close()

	changes := logs.FilterMessage("cart changed").AllUntimed()
	require.Len(t, changes, 2)
	added := changes[0].ContextMap()
	assert.Equal(t, "sid-1", added["session_id"])
	assert.Equal(t, "added", added["kind"])
	assert.Equal(t, int64(2), added["count"])
	assert.Equal(t, int64(2000), added["total"])
	assert.Equal(t, true, added["open"])
	assert.Equal(t, "closed", changes[1].ContextMap()["kind"])
}

func TestEnd_KeepsWishlistInStorage(t *testing.T) {
	kv := repositories.NewInMemoryKVStore()
	m := NewManager(kv, zap.NewNop())
	ctx := context.Background()

	s, _ := m.GetOrStart(ctx, "abc")
	s.Cart.Add(catalog.Product{ID: 1, Price: 1000}, "M", "Black", 1)
	s.Wishlist.Toggle(ctx, 7)

	assert.True(t, m.End("abc"))
	assert.False(t, m.End("abc"))

	s, created := m.GetOrStart(ctx, "abc")
	assert.True(t, created)
	assert.Equal(t, 0, s.Cart.Count())
	assert.True(t, s.Wishlist.Contains(7))
}

func TestSweep(t *testing.T) {
	m := NewManager(nil, zap.NewNop())
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	m.now = func() time.Time { return base }
	m.GetOrStart(ctx, "old")
	m.now = func() time.Time { return base.Add(90 * time.Minute) }
	m.GetOrStart(ctx, "fresh")

	m.now = func() time.Time { return base.Add(2 * time.Hour) }
	assert.Equal(t, 1, m.Sweep(time.Hour))

	_, ok := m.Get("old")
	assert.False(t, ok)
	_, ok = m.Get("fresh")
	assert.True(t, ok)
}
