package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Config struct {
	Region        string
	Bucket        string
	Prefix        string
	Endpoint      string // non-empty for S3-compatible stores, enables path-style addressing
	PublicBaseURL string
}

// S3ImageStore uploads menu images to a bucket and returns their public URL.
type S3ImageStore struct {
	uploader      *manager.Uploader
	bucket        string
	prefix        string
	publicBaseURL string
}

func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3ImageStore(client *s3.Client, cfg S3Config) *S3ImageStore {
	return &S3ImageStore{
		uploader:      manager.NewUploader(client),
		bucket:        cfg.Bucket,
		prefix:        cfg.Prefix,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}
}

func (s *S3ImageStore) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := objectKey(s.prefix, filename)

	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return out.Location, nil
}

// objectKey names the object with a fresh uuid under prefix, keeping the
// lower-cased extension of the uploaded file.
func objectKey(prefix, filename string) string {
	name := uuid.NewString() + strings.ToLower(path.Ext(filename))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
