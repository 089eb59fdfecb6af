// Package storage implementa el puerto FileStorage sobre un bucket S3
// (o compatible: MinIO, Supabase Storage).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/pkg/config"
)

var _ usecase.FileStorage = (*S3Storage)(nil)

// S3Storage sube archivos al bucket configurado y devuelve su URL pública.
type S3Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Storage construye el adaptador de storage. Si cfg.Endpoint no está
// vacío se usa como endpoint compatible S3 con path-style (MinIO, Supabase).
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

// Upload sube el archivo bajo folder/ con una clave única y devuelve la URL pública.
func (s *S3Storage) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%d_%s_%s",
		strings.Trim(folder, "/"), time.Now().Unix(), uuid.New().String()[:8], sanitizeFilename(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.publicBaseURL + "/" + key, nil
}

// sanitizeFilename reemplaza caracteres problemáticos para claves S3 y URLs.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "?", "_", "#", "_", "%", "_")
	return replacer.Replace(name)
}
