// Package storage persists contracts and photos in DigitalOcean Spaces
// through its S3-compatible API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hawkinsjon/hometown-heroes/internal/config"
)

// PresignExpiry is how long issued upload URLs stay valid.
const PresignExpiry = 5 * time.Minute

// Store is the object storage surface the handlers use. Tests inject an
// in-memory implementation.
type Store interface {
	// PresignUpload issues a pre-signed PUT URL for a direct browser upload.
	PresignUpload(ctx context.Context, key, contentType string) (string, error)

	// PutObject stores bytes publicly readable and returns the public URL.
	PutObject(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// PublicURL returns the public URL an object key resolves to.
	PublicURL(key string) string
}

// Spaces is the DigitalOcean Spaces implementation of Store.
type Spaces struct {
	cfg       *config.Config
	client    *s3.Client
	presigner *s3.PresignClient
}

// NewSpaces creates a Spaces client from the configured credentials.
func NewSpaces(ctx context.Context, cfg *config.Config) (*Spaces, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.SpacesRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.SpacesAccessKey, cfg.SpacesSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://" + cfg.SpacesEndpoint)
	})

	return &Spaces{
		cfg:       cfg,
		client:    client,
		presigner: s3.NewPresignClient(client),
	}, nil
}

// PresignUpload issues a pre-signed PUT URL for the given key.
func (s *Spaces) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.SpacesBucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign upload %s: %w", key, err)
	}
	return req.URL, nil
}

// PutObject stores data under key with a public-read ACL.
func (s *Spaces) PutObject(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.SpacesBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// PublicURL returns the CDN-less public URL for an object key.
func (s *Spaces) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.cfg.SpacesBucket, s.cfg.SpacesRegion, key)
}
