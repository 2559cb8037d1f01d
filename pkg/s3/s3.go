package s3

import (
	"fmt"
	"io"
	"strings"

	"lick-scroll-monetization/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Client struct {
	s3Client *s3.S3
	bucket   string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	// Ensure bucket exists (for MinIO)
	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		// Creation fails harmlessly when the bucket already exists
		_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		})
	}

	return client, nil
}

// Upload stores body under key and returns the object URL.
func (c *Client) Upload(key string, body io.ReadSeeker, contentType string) (string, error) {
	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return c.objectURL(key), nil
}

func (c *Client) objectURL(key string) string {
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "https"
		if c.s3Client.Config.DisableSSL != nil && *c.s3Client.Config.DisableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
