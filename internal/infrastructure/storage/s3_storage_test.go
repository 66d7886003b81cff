package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
)

func testStorageConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Enabled:         true,
		Endpoint:        endpoint,
		Region:          "eu-west-3",
		Bucket:          "products",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		PublicBaseURL:   "https://xyz.supabase.co/storage/v1/object/public/",
		UsePathStyle:    true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.Bucket = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.AccessKeyID = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.SecretAccessKey = ""
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("missing endpoint returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(testStorageConfig(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endpoint is required")
	})

	t.Run("valid config creates storage with defaults", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testStorageConfig("xyz.supabase.co/storage/v1/s3"), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "products", storage.Bucket())
		assert.Equal(t, 15*time.Minute, storage.presignTTL)
	})

	t.Run("presign expiration option", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(testStorageConfig("http://localhost:9000"), WithPresignExpiration(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, time.Minute, storage.presignTTL)
	})
}

func TestS3ObjectStorage_PresignUpload(t *testing.T) {
	storage, err := NewS3ObjectStorage(testStorageConfig("http://localhost:9000"))
	require.NoError(t, err)

	before := time.Now()
	rawURL, expiresAt, err := storage.PresignUpload(context.Background(), "products/p-1/1700000000000_ab.png", "image/png", 2048)
	require.NoError(t, err)

	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/products/products/p-1/1700000000000_ab.png", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
	assert.WithinDuration(t, before.Add(15*time.Minute), expiresAt, 5*time.Second)

	_, _, err = storage.PresignUpload(context.Background(), "", "image/png", 1)
	assert.Error(t, err)
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	storage, err := NewS3ObjectStorage(testStorageConfig("http://localhost:9000"))
	require.NoError(t, err)
	assert.Equal(t,
		"https://xyz.supabase.co/storage/v1/object/public/products/products/p-1/a.png",
		storage.PublicURL("products/p-1/a.png"),
	)

	cfg := testStorageConfig("http://localhost:9000")
	cfg.PublicBaseURL = ""
	private, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)
	assert.Empty(t, private.PublicURL("products/p-1/a.png"))
}

func TestS3ObjectStorage_DeleteObject(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	storage, err := NewS3ObjectStorage(testStorageConfig(server.URL))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteObject(context.Background(), "products/p-1/a.png"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/products/products/p-1/a.png", gotPath)

	assert.Error(t, storage.DeleteObject(context.Background(), ""))
}

func TestDisabledStorage(t *testing.T) {
	var s DisabledStorage
	_, _, err := s.PresignUpload(context.Background(), "k", "image/png", 1)
	assert.ErrorIs(t, err, catalogapp.ErrStorageDisabled)
	assert.ErrorIs(t, s.DeleteObject(context.Background(), "k"), catalogapp.ErrStorageDisabled)
	assert.Empty(t, s.PublicURL("k"))
}
