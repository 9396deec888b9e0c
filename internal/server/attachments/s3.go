// Package attachments hands out presigned S3 URLs for clinical document
// attachments. Clients upload and download directly against the bucket.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const defaultExpiry = 15 * time.Minute

var ErrNotConfigured = errors.New("attachments are not configured")

// Presigner issues upload URLs for a user's attachment and download URLs for
// keys it issued.
type Presigner interface {
	PresignPut(ctx context.Context, userID, fileName string) (key, url string, err error)
	PresignGet(ctx context.Context, key string) (string, error)
}

type Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	BaseEndpoint string
	Expiry       time.Duration
}

type S3Presigner struct {
	cfg   Config
	now   func() time.Time
	newID func() string
}

func NewS3Presigner(cfg Config) *S3Presigner {
	if cfg.Expiry <= 0 {
		cfg.Expiry = defaultExpiry
	}
	return &S3Presigner{cfg: cfg, now: time.Now, newID: uuid.NewString}
}

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}

// StorageKey returns users/<userID>/<yyyy>/<mm>/<dd>/<uuid>-<file>.
func (p *S3Presigner) StorageKey(userID, fileName string) string {
	d := p.now().UTC()
	return fmt.Sprintf("users/%s/%04d/%02d/%02d/%s-%s",
		userID, d.Year(), int(d.Month()), d.Day(), p.newID(), cleanFileName(fileName))
}

// OwnerOf extracts the user id from a key produced by StorageKey.
func OwnerOf(key string) (string, bool) {
	parts := strings.Split(key, "/")
	if len(parts) < 3 || parts[0] != "users" || parts[1] == "" {
		return "", false
	}
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return "", false
		}
	}
	return parts[1], true
}

func (p *S3Presigner) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.cfg.AccessKey,
			p.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if p.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(p.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

func (p *S3Presigner) PresignPut(ctx context.Context, userID, fileName string) (string, string, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := p.cfg.Bucket
	key := p.StorageKey(userID, fileName)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.cfg.Expiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (p *S3Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	presignClient, err := p.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := p.cfg.Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(p.cfg.Expiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
