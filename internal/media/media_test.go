package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// mockObjectClient is a mock implementation of objectClient for testing
type mockObjectClient struct {
	mock.Mock
}

func (m *mockObjectClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *mockObjectClient) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *mockObjectClient) FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, filePath, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseProbe(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		want     float64
		wantCode string
	}{
		{name: "duration", out: `{"format":{"duration":"12.500000"}}`, want: 12.5},
		{name: "no duration", out: `{"format":{}}`, wantCode: apperrors.CodeInvalidArg},
		{name: "garbage", out: `not json`, wantCode: apperrors.CodeExternal},
		{name: "non numeric", out: `{"format":{"duration":"N/A"}}`, wantCode: apperrors.CodeExternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbe([]byte(tt.out))
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMinioStore_PutVideo(t *testing.T) {
	client := &mockObjectClient{}
	path := writeFile(t, "clip.MP4", "not really a video")

	client.On("BucketExists", mock.Anything, "vidshare").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "vidshare", minio.MakeBucketOptions{}).Return(nil)
	client.On("FPutObject", mock.Anything, "vidshare",
		mock.MatchedBy(func(name string) bool { return strings.HasPrefix(name, "video/") && strings.HasSuffix(name, ".mp4") }),
		path, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	store := newMinioStore(client, "vidshare", "http://cdn.local/", func(string) (float64, error) { return 42.5, nil })

	obj, err := store.Put(context.Background(), KindVideo, path)
	require.NoError(t, err)
	assert.Equal(t, 42.5, obj.DurationSeconds)
	assert.True(t, strings.HasPrefix(obj.Ref, "http://cdn.local/vidshare/video/"), obj.Ref)

	client.AssertExpectations(t)
}

func TestMinioStore_PutImageSkipsProbe(t *testing.T) {
	client := &mockObjectClient{}
	path := writeFile(t, "me.png", "png")

	client.On("BucketExists", mock.Anything, "vidshare").Return(true, nil)
	client.On("FPutObject", mock.Anything, "vidshare", mock.Anything, path, minio.PutObjectOptions{ContentType: "image/png"}).
		Return(minio.UploadInfo{}, nil)

	store := newMinioStore(client, "vidshare", "http://cdn.local", func(string) (float64, error) {
		t.Fatal("images are not probed")
		return 0, nil
	})

	obj, err := store.Put(context.Background(), KindAvatar, path)
	require.NoError(t, err)
	assert.Zero(t, obj.DurationSeconds)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestMinioStore_PutErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		store := newMinioStore(&mockObjectClient{}, "b", "http://x", ProbeDuration)
		_, err := store.Put(context.Background(), KindCover, filepath.Join(t.TempDir(), "nope.jpg"))
		assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
	})

	t.Run("empty file", func(t *testing.T) {
		store := newMinioStore(&mockObjectClient{}, "b", "http://x", ProbeDuration)
		_, err := store.Put(context.Background(), KindCover, writeFile(t, "empty.jpg", ""))
		assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
	})

	t.Run("unreadable video is not uploaded", func(t *testing.T) {
		client := &mockObjectClient{}
		store := newMinioStore(client, "b", "http://x", func(string) (float64, error) {
			return 0, apperrors.New(apperrors.CodeExternal, "ffprobe failed")
		})
		_, err := store.Put(context.Background(), KindVideo, writeFile(t, "v.mp4", "x"))
		assert.Equal(t, apperrors.CodeExternal, apperrors.CodeOf(err))
		client.AssertNotCalled(t, "FPutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload failure", func(t *testing.T) {
		client := &mockObjectClient{}
		client.On("BucketExists", mock.Anything, "b").Return(true, nil)
		client.On("FPutObject", mock.Anything, "b", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		store := newMinioStore(client, "b", "http://x", ProbeDuration)
		_, err := store.Put(context.Background(), KindThumbnail, writeFile(t, "t.jpg", "jpg"))
		assert.Equal(t, apperrors.CodeExternal, apperrors.CodeOf(err))
	})
}

func TestDisabled(t *testing.T) {
	_, err := Disabled().Put(context.Background(), KindAvatar, "/tmp/a.png")
	assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "avatar")
}
