package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/Taichi-iskw/vidshare/internal/config"
	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
)

// objectClient is the subset of *minio.Client used by the store
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// minioStore implements Store on a MinIO bucket
type minioStore struct {
	client    objectClient
	bucket    string
	publicURL string
	probe     ProbeFunc
}

// NewMinioStore connects to MinIO using the storage configuration
func NewMinioStore(cfg config.StorageConfig) (Store, error) {
	if cfg.Endpoint == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "storage endpoint is not configured")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to create MinIO client")
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}
	return newMinioStore(client, cfg.Bucket, publicURL, ProbeDuration), nil
}

func newMinioStore(client objectClient, bucket, publicURL string, probe ProbeFunc) *minioStore {
	return &minioStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		probe:     probe,
	}
}

// Put uploads localPath under a fresh object name. Videos are probed for
// their duration before upload so an unreadable file is never stored.
func (s *minioStore) Put(ctx context.Context, kind Kind, localPath string) (*Object, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidArg, fmt.Sprintf("cannot read %s file %q", kind, localPath))
	}
	if info.IsDir() || info.Size() == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("%s file %q is empty", kind, localPath))
	}

	obj := &Object{}
	if kind == KindVideo {
		if obj.DurationSeconds, err = s.probe(localPath); err != nil {
			return nil, err
		}
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	objectName := fmt.Sprintf("%s/%s%s", kind, ids.New(), ext)
	opts := minio.PutObjectOptions{ContentType: mime.TypeByExtension(ext)}
	if _, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, opts); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to upload "+string(kind))
	}

	logrus.WithFields(logrus.Fields{"bucket": s.bucket, "object": objectName, "size": info.Size()}).Debug("media uploaded")
	obj.Ref = fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName)
	return obj, nil
}

func (s *minioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "failed to check bucket")
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternal, "failed to create bucket")
	}
	return nil
}
