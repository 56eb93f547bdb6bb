// Package s3 signs time-limited media URLs. No object is read or written.
package s3

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"go.uber.org/zap"
)

// PresignAPI is the part of s3.PresignClient used here
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Presigner implements ports.Presigner for one bucket
type Presigner struct {
	client PresignAPI
	bucket string
	logger *zap.Logger
}

// NewPresigner wraps an S3 client in a presign client
func NewPresigner(client *s3.Client, bucket string, logger *zap.Logger) *Presigner {
	return NewPresignerWithAPI(s3.NewPresignClient(client), bucket, logger)
}

// NewPresignerWithAPI builds a presigner over any PresignAPI
func NewPresignerWithAPI(api PresignAPI, bucket string, logger *zap.Logger) *Presigner {
	return &Presigner{client: api, bucket: bucket, logger: logger}
}

var (
	errNoBucket            = errors.New("media bucket is not configured")
	errContentTypeUnsigned = errors.New("content type was not signed into the upload url")
)

// PresignPut signs an upload; contentType becomes a signed header
func (p *Presigner) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	if p.bucket == "" {
		return "", errNoBucket
	}
	// Content-Type is pinned in the build step so it is always among the
	// signed headers.
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	},
		s3.WithPresignExpires(expires),
		s3.WithPresignClientFromClientOptions(
			s3.WithAPIOptions(smithyhttp.SetHeaderValue("Content-Type", contentType)),
		),
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign put: %w", err)
	}
	if req.SignedHeader.Get("Content-Type") != contentType {
		return "", errContentTypeUnsigned
	}

	p.logger.Debug("Presigned upload", zap.String("key", key), zap.Duration("expires", expires))
	return req.URL, nil
}

// PresignGet signs a download. The object is not checked for existence.
func (p *Presigner) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	if p.bucket == "" {
		return "", errNoBucket
	}
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign get: %w", err)
	}

	p.logger.Debug("Presigned download", zap.String("key", key), zap.Duration("expires", expires))
	return req.URL, nil
}
