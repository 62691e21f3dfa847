package media

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

var pngBytes = append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), make([]byte, 32)...)

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected domain error, got %v", err)
	return de.Code
}

func TestImageService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores png under products prefix", func(t *testing.T) {
		store := new(MockObjectStorage)
		store.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "products/") && strings.HasSuffix(key, ".png")
		}), pngBytes, "image/png").Return(nil)

		svc := NewImageService(store, 0, nil)
		img, err := svc.Upload(ctx, "drill.PNG", "image/png", bytes.NewReader(pngBytes))
		require.NoError(t, err)

		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, "https://cdn.test/"+img.Key, img.URL)
		assert.Equal(t, len(pngBytes), img.Size)
		store.AssertExpectations(t)
	})

	t.Run("rejects content that is not an image", func(t *testing.T) {
		store := new(MockObjectStorage)
		svc := NewImageService(store, 0, nil)

		_, err := svc.Upload(ctx, "evil.png", "image/png", strings.NewReader("<svg onload=alert(1)></svg>"))
		assert.Equal(t, "INVALID_FILE_TYPE", domainCode(t, err))
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		svc := NewImageService(new(MockObjectStorage), 16, nil)
		_, err := svc.Upload(ctx, "big.png", "image/png", bytes.NewReader(pngBytes))
		assert.Equal(t, "FILE_TOO_LARGE", domainCode(t, err))
	})

	t.Run("rejects empty files", func(t *testing.T) {
		svc := NewImageService(new(MockObjectStorage), 0, nil)
		_, err := svc.Upload(ctx, "empty.png", "image/png", bytes.NewReader(nil))
		assert.Equal(t, "EMPTY_FILE", domainCode(t, err))
	})

	t.Run("propagates storage failures", func(t *testing.T) {
		store := new(MockObjectStorage)
		store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable"))

		svc := NewImageService(store, 0, nil)
		_, err := svc.Upload(ctx, "drill.png", "image/png", bytes.NewReader(pngBytes))
		assert.EqualError(t, err, "bucket unavailable")
	})
}
