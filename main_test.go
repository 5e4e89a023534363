package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"deenha/internal/config"
	"deenha/internal/middleware"
	"deenha/internal/repositories"
	"deenha/internal/seed"
	"deenha/pkg/imagestore"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DSN", filepath.Join(t.TempDir(), "deenha.sqlite"))
	v.Set("IMAGE_DIR", t.TempDir())
	v.Set("JWT_SECRET", "test_jwt_secret")
	v.Set("CATALOG_RETRY_INTERVAL", "1ms")
	return config.FromViper(v)
}

// TestStorefrontEndToEnd boots the storefront the way main does, with
// SQLite on disk and Redis served by miniredis.
func TestStorefrontEndToEnd(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisAddr = mr.Addr()

	ctx := context.Background()
	storefront, cleanup, err := buildApp(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, seed.Apply(ctx, storefront.Products, storefront.Posts))
	require.NoError(t, storefront.Catalog.Refresh(ctx))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/products?category=Scarves&sort=price-high", nil)
	resp, err := storefront.Fiber.Test(req, -1)
	require.NoError(t, err)
	var list struct {
		Count    int `json:"count"`
		Products []struct {
			Price int `json:"price"`
		} `json:"products"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Equal(t, 4, list.Count)
	assert.Equal(t, 259000, list.Products[0].Price)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/5/toggle", nil)
	resp, err = storefront.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionID := resp.Header.Get(middleware.SessionHeader)

	// The wishlist is persisted in Redis under the session key.
	stored, err := mr.Get("deenha-wishlist:" + sessionID)
	require.NoError(t, err)
	assert.Equal(t, "[5]", stored)

	body, _ := json.Marshal(map[string]interface{}{"product_id": 5})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, sessionID)
	resp, err = storefront.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err = storefront.Fiber.Test(req, -1)
	require.NoError(t, err)
	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ready", health["catalog"])
	assert.Equal(t, float64(1), health["sessions"])
}

func TestOpenKVStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	kv, closeKV := openKVStore(ctx, cfg, zap.NewNop())
	defer closeKV()
	assert.IsType(t, &repositories.InMemoryKVStore{}, kv)

	mr := miniredis.RunT(t)
	cfg.RedisAddr = mr.Addr()
	kv, closeRedis := openKVStore(ctx, cfg, zap.NewNop())
	defer closeRedis()
	assert.IsType(t, &repositories.RedisKVStore{}, kv)

	// An unreachable server falls back to memory.
	mr.Close()
	kv, closeDown := openKVStore(ctx, cfg, zap.NewNop())
	defer closeDown()
	assert.IsType(t, &repositories.InMemoryKVStore{}, kv)
}

func TestOpenImageStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	store, err := openImageStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &imagestore.LocalStore{}, store)

	cfg.ImageStore = "s3"
	cfg.AWSS3Endpoint = "http://localhost:4566"
	cfg.AWSAccessKey = "test"
	cfg.AWSSecretKey = "test"
	store, err = openImageStore(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &imagestore.S3Store{}, store)

	cfg.ImageStore = "ftp"
	_, err = openImageStore(ctx, cfg)
	assert.ErrorContains(t, err, `unsupported image store "ftp"`)
}

func TestBuildApp_BadDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "mysql"

	_, cleanup, err := buildApp(context.Background(), cfg, zap.NewNop())
	cleanup()
	assert.Error(t, err)
}

func TestSweepSessionsStops(t *testing.T) {
	cfg := testConfig(t)
	storefront, cleanup, err := buildApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweepSessions(ctx, storefront, time.Hour, zap.NewNop())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
