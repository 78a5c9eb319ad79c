package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options configures NewS3. Endpoint is empty for AWS itself and set for
// MinIO and friends, which also need path-style addressing.
type S3Options struct {
	Bucket   string
	Region   string
	Key      string
	Secret   string
	Endpoint string
	URL      string
}

// S3 stores files as objects in one bucket.
type S3 struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage/s3: bucket is not configured")
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}

	loaders := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(opts.Region)}
	if opts.Key != "" && opts.Secret != "" {
		loaders = append(loaders, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.Key, opts.Secret, ""),
		))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(opts.URL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &S3{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  opts.Bucket,
		baseURL: baseURL,
	}, nil
}

func (d *S3) Put(ctx context.Context, path string, content []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType(path)),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: put %s: %w", path, err)
	}
	return nil
}

func (d *S3) Get(ctx context.Context, path string) ([]byte, error) {
	out, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("storage/s3: get %s: %w", path, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (d *S3) Exists(ctx context.Context, path string) (bool, error) {
	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("storage/s3: head %s: %w", path, err)
	}
	return true, nil
}

func (d *S3) Delete(ctx context.Context, path string) error {
	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", path, err)
	}
	return nil
}

func (d *S3) Files(ctx context.Context, directory string) ([]string, error) {
	prefix := strings.Trim(directory, "/")
	if prefix != "" {
		prefix += "/"
	}

	keys := []string{}
	pages := s3.NewListObjectsV2Paginator(d.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(d.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage/s3: list %s: %w", directory, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (d *S3) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}

func contentType(path string) string {
	if strings.HasSuffix(path, ".json") {
		return "application/json"
	}
	return "application/octet-stream"
}
