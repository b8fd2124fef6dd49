package services

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MediaStorage uploads food media to S3 and returns a public URL. The
// rest of the system only ever sees the URL string.
type MediaStorage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewMediaStorage(ctx context.Context, region, bucket, baseURL string) (*MediaStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &MediaStorage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func extFromMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	}
	if exts, _ := mime.ExtensionsByType(mimeType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(mimeType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}

// Upload stores the bytes under food-media/<name><ext> and returns the
// public URL for the object.
func (m *MediaStorage) Upload(ctx context.Context, data []byte, name, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no media data to upload")
	}
	key := fmt.Sprintf("food-media/%s%s", name, extFromMime(mimeType))

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return fmt.Sprintf("%s/%s", m.baseURL, key), nil
}
