package attachments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Presigner = (*S3Presigner)(nil)

func newTestPresigner() *S3Presigner {
	p := NewS3Presigner(Config{
		Region:       "us-east-1",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "sehatbeat",
		BaseEndpoint: "http://127.0.0.1:9000",
	})
	p.now = func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }
	p.newID = func() string { return "0000-uuid" }
	return p
}

func restoreSeams(t *testing.T) {
	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})
}

func TestStorageKey(t *testing.T) {
	p := newTestPresigner()

	assert.Equal(t, "users/u1/2024/03/07/0000-uuid-scan.pdf", p.StorageKey("u1", "scan.pdf"))
	assert.Equal(t, "users/u1/2024/03/07/0000-uuid-my_x-ray.png", p.StorageKey("u1", `C:\docs\my x-ray.png`))
	assert.Equal(t, "users/u1/2024/03/07/0000-uuid-passwd", p.StorageKey("u1", "../../etc/passwd"))
	assert.Equal(t, "users/u1/2024/03/07/0000-uuid-file", p.StorageKey("u1", ""))
}

func TestNewS3Presigner_DefaultExpiry(t *testing.T) {
	assert.Equal(t, defaultExpiry, NewS3Presigner(Config{}).cfg.Expiry)
	assert.Equal(t, time.Minute, NewS3Presigner(Config{Expiry: time.Minute}).cfg.Expiry)
}

func TestPresignPut_Offline(t *testing.T) {
	p := newTestPresigner()

	key, url, err := p.PresignPut(context.Background(), "u1", "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/2024/03/07/0000-uuid-scan.pdf", key)
	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:9000/sehatbeat/users/u1/"), url)
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestGetPresignClient_AppliesConfig(t *testing.T) {
	restoreSeams(t)
	p := newTestPresigner()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	pc, err := p.getPresignClient(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pc)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestPresign_LoadError(t *testing.T) {
	restoreSeams(t)
	p := newTestPresigner()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, _, err := p.PresignPut(context.Background(), "u1", "a.pdf")
	require.EqualError(t, err, "load-fail")

	_, err = p.PresignGet(context.Background(), "k")
	require.EqualError(t, err, "load-fail")
}

func TestPresign_SignError(t *testing.T) {
	restoreSeams(t)
	p := newTestPresigner()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, "users/u1/x", *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://signed"}, nil
	}

	_, _, err := p.PresignPut(context.Background(), "u1", "a.pdf")
	require.EqualError(t, err, "presign-put-fail")

	url, err := p.PresignGet(context.Background(), "users/u1/x")
	require.NoError(t, err)
	assert.Equal(t, "http://signed", url)
}

func TestOwnerOf(t *testing.T) {
	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"users/u1/2024/03/01/abc-scan.pdf", "u1", true},
		{"users/u1/x", "u1", true},
		{"users/u1", "", false},
		{"users//2024/x", "", false},
		{"other/u1/2024/x", "", false},
		{"users/u1/../u2/x", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := OwnerOf(tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}
}

func TestOwnerOf_StorageKey(t *testing.T) {
	p := NewS3Presigner(Config{Bucket: "b"})
	got, ok := OwnerOf(p.StorageKey("user-42", "../../etc/passwd"))
	assert.True(t, ok)
	assert.Equal(t, "user-42", got)
}
