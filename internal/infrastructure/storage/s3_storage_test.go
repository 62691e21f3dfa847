package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "key", SecretKey: "secret"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "products", SecretKey: "secret"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{Bucket: "products", AccessKey: "key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3ObjectStorage(&config.StorageConfig{
			Bucket:    "products",
			AccessKey: "key",
			SecretKey: "secret",
			Endpoint:  "minio.local:9000",
		}, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "products", s.GetBucket())
		assert.Equal(t, "http://minio.local:9000", s.endpoint)
	})
}

func TestS3ObjectStorage_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "public base url wins",
			cfg:  config.StorageConfig{Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.jeenmataimpex.com/"},
			want: "https://cdn.jeenmataimpex.com/products/a.jpg",
		},
		{
			name: "path style",
			cfg:  config.StorageConfig{Endpoint: "http://minio:9000", UsePathStyle: true},
			want: "http://minio:9000/images/products/a.jpg",
		},
		{
			name: "virtual host style",
			cfg:  config.StorageConfig{Endpoint: "https://s3.ap-south-1.amazonaws.com"},
			want: "https://images.s3.ap-south-1.amazonaws.com/products/a.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Bucket = "images"
			cfg.AccessKey = "key"
			cfg.SecretKey = "secret"
			s, err := NewS3ObjectStorage(&cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.PublicURL("products/a.jpg"))
		})
	}
}

// fakeS3 records the requests an S3 client makes and answers them with
// fixed status codes
type fakeS3 struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	if r.Method == http.MethodPut {
		f.bodies[r.URL.Path] = body
	}
	f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodHead:
		if r.URL.Path == "/images/products/present.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeS3Storage(t *testing.T) (*S3ObjectStorage, *fakeS3) {
	t.Helper()
	fake := &fakeS3{bodies: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewS3ObjectStorage(&config.StorageConfig{
		Bucket:       "images",
		AccessKey:    "key",
		SecretKey:    "secret",
		Endpoint:     srv.URL,
		UsePathStyle: true,
	})
	require.NoError(t, err)
	return s, fake
}

func TestS3ObjectStorage_AgainstFakeServer(t *testing.T) {
	s, fake := newFakeS3Storage(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "products/drill.jpg", []byte("jpeg-bytes"), "image/jpeg"))
	assert.Equal(t, []byte("jpeg-bytes"), fake.bodies["/images/products/drill.jpg"])

	exists, err := s.ObjectExists(ctx, "products/present.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.ObjectExists(ctx, "products/missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.DeleteObject(ctx, "products/drill.jpg"))
	assert.Contains(t, fake.requests, "DELETE /images/products/drill.jpg")
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, _ := newFakeS3Storage(t)
	ctx := context.Background()

	assert.ErrorContains(t, s.Upload(ctx, "", nil, "image/png"), "storage key is required")
	assert.ErrorContains(t, s.DeleteObject(ctx, ""), "storage key is required")
	_, err := s.ObjectExists(ctx, "")
	assert.ErrorContains(t, err, "storage key is required")
}

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage("/uploads/")
	ctx := context.Background()
	data := []byte("png")

	require.NoError(t, s.Upload(ctx, "products/a.png", data, "image/png"))
	data[0] = 'x'

	obj, ok := s.Get("products/a.png")
	require.True(t, ok)
	assert.Equal(t, "png", string(obj.Data))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, "/uploads/products/a.png", s.PublicURL("products/a.png"))

	require.NoError(t, s.DeleteObject(ctx, "products/a.png"))
	_, ok = s.Get("products/a.png")
	assert.False(t, ok)

	assert.Error(t, s.Upload(ctx, "", data, "image/png"))
}
