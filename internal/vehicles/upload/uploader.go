package upload

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"garageportal/pkg/config"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/logger"
)

// ObjectStore is the slice of the MinIO client the uploader needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// NewObjectStore builds the MinIO client from configuration.
func NewObjectStore(cfg *config.Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return client, nil
}

// Uploader streams vehicle images into the object store, one upload per
// session at a time, reporting progress through the Tracker.
type Uploader struct {
	store     ObjectStore
	tracker   *Tracker
	bucket    string
	publicURL string
	log       *logger.Logger
}

func NewUploader(store ObjectStore, tracker *Tracker, cfg *config.Config, log *logger.Logger) *Uploader {
	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	return &Uploader{
		store:     store,
		tracker:   tracker,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log,
	}
}

// progressReader reports bytes as they are consumed by the store client.
type progressReader struct {
	r       io.Reader
	tracker *Tracker
	userID  string
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.tracker.Progress(pr.userID, int64(n))
	}
	return n, err
}

// Upload streams one image. A second upload for the same session while one
// is running is refused. A failure leaves the session blocked until a retry
// succeeds.
func (u *Uploader) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (string, error) {
	if st, ok := u.tracker.Get(userID); ok && st.State == StateUploading {
		return "", apperrors.Conflict(GateMessage)
	}

	key := objectKey(filename)
	u.tracker.Begin(userID, filename, size)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.store.PutObject(ctx, u.bucket, key, &progressReader{
		r:       r,
		tracker: u.tracker,
		userID:  userID,
	}, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		u.tracker.Fail(userID, err)
		u.log.Error("Image upload failed",
			"user_id", userID,
			"object_key", key,
			"error", err,
		)
		return "", apperrors.Internal("Image upload failed. Please try again.", err)
	}

	url := fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key)
	u.tracker.Done(userID, url)
	u.log.Info("Image uploaded",
		"user_id", userID,
		"object_key", key,
		"size", size,
	)
	return url, nil
}

// objectKey suffixes the filename with the upload instant so repeated
// uploads of the same file never collide.
func objectKey(filename string) string {
	return fmt.Sprintf("vehicles/%s_%s", filename, time.Now().UTC().Format(time.RFC3339))
}
