// Package attachments stores transaction receipts in an S3-compatible
// bucket and hands back public URLs to hang on the transaction.
package attachments

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/alexispparra/roots-sub000/internal/config"
	"github.com/alexispparra/roots-sub000/internal/logger"
)

// Store sube comprobantes al bucket configurado.
type Store struct {
	client *minio.Client
	bucket string
	useSSL bool
	log    *log.Logger
}

// NewStore connects to the object storage endpoint and makes sure the
// receipts bucket exists.
func NewStore(ctx context.Context, cfg config.MinioConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		useSSL: cfg.UseSSL,
		log:    logger.Attachments(),
	}, nil
}

// UploadReceipt decodes a base64 data URI and stores it under the project's
// prefix. Returns the URL of the stored object.
func (s *Store) UploadReceipt(ctx context.Context, projectID string, dataURI string) (string, error) {
	data, mimeType, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s%s", projectID, uuid.New().String(), extensionFor(mimeType))
	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}

	s.log.Info("Receipt uploaded", "object", objectName, "size", len(data))

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, objectName), nil
}

// Delete removes a stored object by its name within the bucket.
func (s *Store) Delete(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
