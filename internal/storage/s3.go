package storage

import (
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/portfolio/internal/config"
	"github.com/rotisserie/eris"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store uploads images to an S3 compatible bucket.
type S3Store struct {
	uploader  uploader
	bucket    string
	publicURL string
	prefix    string
	now       func() time.Time
}

// NewS3Store 使用默认凭证链创建 S3 客户端。Endpoint 非空时使用 path-style 访问（兼容 MinIO）。
func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
	if !cfg.Enabled() {
		return nil, eris.New("s3 bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, eris.Wrap(err, "loading aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "https://" + cfg.Bucket + ".s3." + cfg.Region + ".amazonaws.com"
	}

	return &S3Store{
		uploader:  manager.NewUploader(client),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		prefix:    "uploads/",
		now:       time.Now,
	}, nil
}

// Save uploads the object under uploads/ and returns its public URL.
func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := s.prefix + objectName(formatFrom(name, contentType), s.now())

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", eris.Wrapf(err, "uploading %s to bucket %s", key, s.bucket)
	}
	return joinURL(s.publicURL, key), nil
}
