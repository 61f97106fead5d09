package resolver

import (
	"bitwise74/file-linker/internal/service"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const defaultPresignTTL = 15 * time.Minute

type S3Config struct {
	AccessKey       string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string // Non-AWS providers (R2, MinIO). Empty uses AWS.
	PresignTTL      time.Duration
}

// S3 hands out presigned GET URLs for objects stored in a bucket. The object
// reference is the object key.
type S3 struct {
	presign *s3.PresignClient
	bucket  *string
	ttl     time.Duration
}

func newS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = c.Region
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func newS3(client *s3.Client, c S3Config) *S3 {
	ttl := c.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	return &S3{
		presign: s3.NewPresignClient(client),
		bucket:  aws.String(c.Bucket),
		ttl:     ttl,
	}
}

// NewS3 builds the resolver and makes sure the bucket exists
func NewS3(ctx context.Context, c S3Config) (*S3, error) {
	client, err := newS3Client(ctx, c)
	if err != nil {
		return nil, err
	}

	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.Bucket),
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", c.Bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return newS3(client, c), nil
}

func (r *S3) FetchURL(ctx context.Context, objectRef string, o service.FetchOptions) (string, error) {
	in := &s3.GetObjectInput{
		Bucket: r.bucket,
		Key:    aws.String(objectRef),
	}

	if o.Attachment {
		in.ResponseContentDisposition = aws.String(service.ContentDisposition(o.FileName))
	}

	req, err := r.presign.PresignGetObject(ctx, in, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign object url, %w", err)
	}

	return req.URL, nil
}
