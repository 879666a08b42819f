package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// credentialsField is the key inside the secret object holding the bearer
// credential for the editorial source.
const credentialsField = "cf.escenic.credentials"

// Config holds the object-storage settings for the secret file.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	ObjectKey string
}

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Provider fetches the source bearer credential from an S3-compatible bucket
// and serves it through an in-process TTL cache.
type Provider struct {
	client s3API
	bucket string
	key    string
	cache  *Cache
	now    func() time.Time
	log    zerolog.Logger
}

// NewProvider builds the S3 client for the secret bucket. A custom endpoint
// with path-style addressing is used so S3-compatible services (Spaces,
// MinIO) work unchanged.
func NewProvider(ctx context.Context, cfg Config, cache *Cache, log zerolog.Logger) (*Provider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Provider{
		client: client,
		bucket: cfg.Bucket,
		key:    cfg.ObjectKey,
		cache:  cache,
		now:    time.Now,
		log:    log,
	}, nil
}

// Token returns the bearer credential, fetching the secret object only when
// the cached value has expired.
func (p *Provider) Token(ctx context.Context) (string, error) {
	if tok, ok := p.cache.Get(p.now()); ok {
		return tok, nil
	}

	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil {
		return "", fmt.Errorf("fetch secret object %s/%s: %w", p.bucket, p.key, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("read secret object: %w", err)
	}

	var secret map[string]string
	if err := json.Unmarshal(body, &secret); err != nil {
		return "", fmt.Errorf("parse secret object: %w", err)
	}

	tok, ok := secret[credentialsField]
	if !ok || tok == "" {
		return "", fmt.Errorf("secret object is missing %q", credentialsField)
	}

	p.cache.Refresh(p.now(), tok)
	p.log.Debug().Msg("source token refreshed")
	return tok, nil
}
