package publish

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ozenlabs/ozenembed/internal/utils"
)

const defaultRegion = "us-east-1"

// Config selects the bucket audio files are published to.
type Config struct {
	Bucket string
	Region string

	// Endpoint points at a custom S3 compatible service (minio, r2).
	// Empty means AWS.
	Endpoint string

	// Prefix is prepended to every object key.
	Prefix string

	// PublicBaseURL overrides the derived public URL base, for buckets
	// served through a CDN.
	PublicBaseURL string

	AccessKey string
	SecretKey string
}

func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("publish bucket is required")
	}
	return nil
}

func (c *Config) region() string {
	if c.Region == "" {
		return defaultRegion
	}
	return c.Region
}

// s3API is the slice of the S3 client Upload needs. Tests substitute fakes.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads audio files and derives the URLs embeds should reference.
type Publisher struct {
	client s3API
	config *Config
}

// New builds a Publisher against real S3. Static credentials are used when
// both keys are set; otherwise the default AWS chain applies.
func New(ctx context.Context, cfg *Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	optFns := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.region()),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		optFns = append(optFns, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg), nil
}

// NewWithClient builds a Publisher over an existing client.
func NewWithClient(client s3API, cfg *Config) *Publisher {
	return &Publisher{
		client: client,
		config: cfg,
	}
}

// Upload puts one audio file into the bucket under its base name, below the
// configured prefix, and returns the public URL for it.
func (p *Publisher) Upload(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat audio: %w", err)
	}

	key := p.Key(audioPath)
	contentType := utils.AudioContentType(audioPath)

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &p.config.Bucket,
		Key:           &key,
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", p.config.Bucket, key, err)
	}

	return p.PublicURL(key)
}

// Key returns the object key an audio path publishes to.
func (p *Publisher) Key(audioPath string) string {
	return path.Join(strings.Trim(p.config.Prefix, "/"), filepath.Base(audioPath))
}

// PublicURL derives the browser facing URL for a key: the configured public
// base when set, the path style endpoint URL for custom endpoints, the
// virtual hosted AWS URL otherwise.
func (p *Publisher) PublicURL(key string) (string, error) {
	switch {
	case p.config.PublicBaseURL != "":
		return utils.JoinURL(p.config.PublicBaseURL, key)
	case p.config.Endpoint != "":
		return utils.JoinURL(p.config.Endpoint, p.config.Bucket, key)
	default:
		return utils.JoinURL(fmt.Sprintf("https://%s.s3.%s.amazonaws.com", p.config.Bucket, p.config.region()), key)
	}
}
