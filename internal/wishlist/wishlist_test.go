package wishlist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"deenha/internal/wishlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStorage struct {
	data map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func TestToggle_AddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	s := wishlist.Load(ctx, newMemStorage(), wishlist.StorageKey, zap.NewNop())

	assert.True(t, s.Toggle(ctx, 5))
	assert.True(t, s.Contains(5))
	assert.Equal(t, 1, s.Count())

	assert.False(t, s.Toggle(ctx, 5))
	assert.False(t, s.Contains(5))
	assert.Equal(t, 0, s.Count())
}

func TestToggle_PersistsWholeSet(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	s := wishlist.Load(ctx, storage, wishlist.StorageKey, zap.NewNop())

	s.Toggle(ctx, 9)
	s.Toggle(ctx, 2)

	assert.Equal(t, "[2,9]", storage.data[wishlist.StorageKey])

	reloaded := wishlist.Load(ctx, storage, wishlist.StorageKey, zap.NewNop())
	assert.Equal(t, []int{2, 9}, reloaded.All())
}

func TestLoad_MissingOrMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()

	assert.Equal(t, 0, wishlist.Load(ctx, storage, "absent", zap.NewNop()).Count())

	storage.data["broken"] = "{not json"
	s := wishlist.Load(ctx, storage, "broken", zap.NewNop())
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Degraded())
}

func TestStorageFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	storage := new(mockStorage)
	storage.On("Get", mock.Anything, "k").Return("", false, errors.New("quota exceeded"))
	storage.On("Set", mock.Anything, "k", mock.Anything, time.Duration(0)).Return(errors.New("quota exceeded"))

	s := wishlist.Load(ctx, storage, "k", zap.NewNop())
	require.True(t, s.Degraded())

	assert.True(t, s.Toggle(ctx, 3))
	assert.True(t, s.Contains(3))
	assert.True(t, s.Degraded())
	storage.AssertExpectations(t)
}

func TestDegradedClearsAfterSuccessfulWrite(t *testing.T) {
	ctx := context.Background()
	storage := new(mockStorage)
	storage.On("Get", mock.Anything, "k").Return("", false, errors.New("timeout"))
	storage.On("Set", mock.Anything, "k", "[3]", time.Duration(0)).Return(nil)

	s := wishlist.Load(ctx, storage, "k", zap.NewNop())
	s.Toggle(ctx, 3)

	assert.False(t, s.Degraded())
}

func TestNilStorageIsMemoryOnly(t *testing.T) {
	ctx := context.Background()
	s := wishlist.Load(ctx, nil, wishlist.StorageKey, zap.NewNop())

	s.Toggle(ctx, 1)

	assert.Equal(t, []int{1}, s.All())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "deenha-wishlist", wishlist.Key(""))
	assert.Equal(t, "deenha-wishlist:abc", wishlist.Key("abc"))
}
