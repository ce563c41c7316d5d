package imagehost

import (
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/Torteous44/santaCruzService/pkg/id"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioHost stores images in an S3-compatible bucket fronted by a CDN.
type MinioHost struct {
	client     *minio.Client
	bucket     string
	cdnBaseURL string
}

type MinioConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	Bucket     string
	CDNBaseURL string
}

func NewMinioHost(ctx context.Context, cfg MinioConfig) (*MinioHost, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.Printf("imagehost: created bucket %s", cfg.Bucket)
	}

	return &MinioHost{
		client:     client,
		bucket:     cfg.Bucket,
		cdnBaseURL: strings.TrimRight(cfg.CDNBaseURL, "/"),
	}, nil
}

func (h *MinioHost) Store(ctx context.Context, filePath string, meta UploadMetadata) (string, error) {
	if err := ValidateFile(filePath); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	objectName := id.NewID32() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	userMeta := map[string]string{
		"contributor": meta.Contributor,
		"floor-id":    meta.FloorID,
		"date":        meta.Date,
	}
	if meta.RoomID != "" {
		userMeta["room-id"] = meta.RoomID
	}

	_, err := h.client.FPutObject(ctx, h.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: userMeta,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (h *MinioHost) Delete(ctx context.Context, hostID string) error {
	return h.client.RemoveObject(ctx, h.bucket, hostID, minio.RemoveObjectOptions{})
}

// DeliveryURL derives the public URL for a stored image. Pure string
// assembly, no network call.
func (h *MinioHost) DeliveryURL(hostID, variant string) string {
	return fmt.Sprintf("%s/%s/%s", h.cdnBaseURL, variant, hostID)
}
