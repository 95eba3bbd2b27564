package s3upload

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/eunmann/mergebench/internal/logctx"
	"github.com/eunmann/mergebench/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// Config configures uploads.
type Config struct {
	// Concurrency is the number of files uploaded in parallel (default: 4).
	Concurrency int
	// PartSize is the multipart part size in bytes (default: manager.DefaultUploadPartSize).
	PartSize int64
}

// DefaultConfig returns the default upload settings.
func DefaultConfig() Config {
	return Config{
		Concurrency: 4,
		PartSize:    manager.DefaultUploadPartSize,
	}
}

// objectUploader is the subset of *manager.Uploader used here.
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Uploader copies local report files to S3.
type Uploader struct {
	up  objectUploader
	cfg Config
}

// NewUploader creates an uploader using default AWS configuration.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewUploaderWithConfig(awsCfg, cfg), nil
}

// NewUploaderWithConfig creates an uploader with a custom AWS config.
func NewUploaderWithConfig(awsCfg aws.Config, cfg Config) *Uploader {
	cfg = normalize(cfg)
	mgr := manager.NewUploader(s3.NewFromConfig(awsCfg), func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
	})
	return &Uploader{up: mgr, cfg: cfg}
}

func normalize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.PartSize < manager.MinUploadPartSize {
		cfg.PartSize = def.PartSize
	}
	return cfg
}

// Result describes one uploaded file.
type Result struct {
	Object
	Bytes    int64
	Location string
	Duration time.Duration
}

// UploadAll uploads files under dest in parallel. The first failure cancels
// the remaining uploads. Results are in the order of files.
func (u *Uploader) UploadAll(ctx context.Context, dest Destination, files []string) ([]Result, error) {
	objs, err := Plan(dest, files)
	if err != nil {
		return nil, err
	}

	log := logctx.FromContext(ctx)
	results := make([]Result, len(objs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(u.cfg.Concurrency)

	for i, obj := range objs {
		g.Go(func() error {
			res, err := u.uploadOne(ctx, dest.Bucket, obj)
			if err != nil {
				return fmt.Errorf("upload %s: %w", obj.LocalPath, err)
			}
			results[i] = res

			logging.FileUploaded(log, "upload", res.Duration).
				Str("key", obj.Key).
				Str("bucket", dest.Bucket).
				Bytes("bytes", res.Bytes).
				Log("file uploaded")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("wait for uploads: %w", err)
	}
	return results, nil
}

func (u *Uploader) uploadOne(ctx context.Context, bucket string, obj Object) (Result, error) {
	start := time.Now()

	f, err := os.Open(obj.LocalPath)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Result{}, err
	}

	out, err := u.up.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(obj.Key),
		Body:        f,
		ContentType: aws.String(contentType(obj.LocalPath)),
	})
	if err != nil {
		return Result{}, fmt.Errorf("put s3://%s/%s: %w", bucket, obj.Key, err)
	}

	return Result{
		Object:   obj,
		Bytes:    info.Size(),
		Location: out.Location,
		Duration: time.Since(start),
	}, nil
}
