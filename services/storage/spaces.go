package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/internadmin/internship-api/config"
)

// SpacesClient archives generated certificates to an S3-compatible bucket
// (DigitalOcean Spaces). Archival is optional; the API works without it.
type SpacesClient struct {
	s3Client *s3.S3
	bucket   string
	region   string
	endpoint string
	cdnURL   string
}

// Configured reports whether the env carries a usable Spaces configuration
func Configured(env *config.EnviornmentVariable) bool {
	return env.SPACES_ACCESS_KEY != "" && env.SPACES_SECRET_KEY != "" &&
		env.SPACES_BUCKET != "" && env.SPACES_ENDPOINT != ""
}

// NewSpacesClient creates a new Spaces client from config
func NewSpacesClient(env *config.EnviornmentVariable) (*SpacesClient, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			env.SPACES_ACCESS_KEY,
			env.SPACES_SECRET_KEY,
			"",
		),
		Endpoint:         aws.String(env.SPACES_ENDPOINT),
		Region:           aws.String(env.SPACES_REGION),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Spaces session: %w", err)
	}

	return &SpacesClient{
		s3Client: s3.New(sess),
		bucket:   env.SPACES_BUCKET,
		region:   env.SPACES_REGION,
		endpoint: env.SPACES_ENDPOINT,
		cdnURL:   env.SPACES_CDN_URL,
	}, nil
}

// Upload stores data under key with public-read ACL and returns its URL
func (c *SpacesClient) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return c.publicURL(key), nil
}

// publicURL builds the object's public URL, preferring the CDN endpoint
func (c *SpacesClient) publicURL(key string) string {
	if c.cdnURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(c.cdnURL, "/"), key)
	}
	endpoint := strings.TrimPrefix(c.endpoint, "https://")
	return fmt.Sprintf("https://%s.%s/%s", c.bucket, endpoint, key)
}
