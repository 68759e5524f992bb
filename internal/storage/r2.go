package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the account endpoint and switches to path-style
	// addressing. Used for S3 compatible stores other than R2.
	Endpoint string
}

// Complete reports whether every setting needed to reach the bucket is set.
func (c R2Config) Complete() bool {
	return (c.AccountID != "" || c.Endpoint != "") && c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// R2Source reads uploaded resume files from a Cloudflare R2 bucket.
type R2Source struct {
	client *s3.Client
	bucket string
}

func NewR2Source(ctx context.Context, cfg R2Config) (*R2Source, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.Endpoint != ""
	})
	return &R2Source{client: client, bucket: cfg.Bucket}, nil
}

// FetchText downloads objectKey and extracts its text. An empty mime is
// inferred from the key's extension.
func (s *R2Source) FetchText(ctx context.Context, objectKey, mime string) (string, error) {
	if mime == "" {
		mime = mimeFromKey(objectKey)
	}
	if !Supported(mime) {
		return "", unsupported(mime)
	}
	data, err := s.Download(ctx, objectKey)
	if err != nil {
		return "", err
	}
	return ExtractText(mime, data)
}

func (s *R2Source) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	_, err = io.Copy(buf, out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func mimeFromKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".txt":
		return MimeText
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDocx
	}
	return ""
}
