// Package storage uploads decoded submission images to S3-compatible object
// storage (DigitalOcean Spaces) and hands back stable public URLs. When
// disabled it runs in pass-through mode and returns every URL unchanged.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"food-dataset-backend/internal/config"
)

const maxFileSize = 5 * 1024 * 1024 // 5MB

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Client-fault upload errors. Callers surface these as 400s, not 500s.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
)

var dataURLRe = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// ObjectPutter is the slice of the S3 client the adapter needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Adapter stores submission images. Mode is fixed at construction.
type Adapter struct {
	enabled bool
	client  ObjectPutter
	bucket  string
	region  string
}

// New creates a storage adapter from configuration. With storage disabled
// the returned adapter passes all URLs through untouched.
func New(cfg config.StorageConfig) (*Adapter, error) {
	if !cfg.Enabled {
		return &Adapter{enabled: false}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &Adapter{
		enabled: true,
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
	}, nil
}

// NewWithClient creates an enabled adapter around an existing client.
func NewWithClient(client ObjectPutter, bucket, region string) *Adapter {
	return &Adapter{enabled: true, client: client, bucket: bucket, region: region}
}

// Enabled reports whether upload mode is active.
func (a *Adapter) Enabled() bool {
	return a.enabled
}

// EnsureRemote resolves an image URL to a durable one. Embedded data URLs
// are decoded and uploaded when storage is enabled; everything else is
// returned unchanged.
func (a *Adapter) EnsureRemote(ctx context.Context, url, filename, mimeType, dishName string) (string, error) {
	if !a.enabled {
		return url, nil
	}
	if !strings.HasPrefix(url, "data:") {
		return url, nil
	}

	match := dataURLRe.FindStringSubmatch(url)
	if match == nil {
		return url, nil
	}

	contentType := strings.TrimSpace(mimeType)
	if contentType == "" {
		contentType = strings.TrimSpace(match[1])
	}

	body, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", fmt.Errorf("failed to decode embedded image: %w", err)
	}

	return a.Upload(ctx, body, filename, contentType, dishName)
}

// Upload validates and uploads raw image bytes with public-read visibility
// and returns the public URL.
func (a *Adapter) Upload(ctx context.Context, body []byte, filename, contentType, dishName string) (string, error) {
	if !a.enabled {
		return "", fmt.Errorf("object storage is not configured")
	}
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if len(body) > maxFileSize {
		return "", ErrFileTooLarge
	}

	safeBase, ext := sanitizeFilename(filename)
	key := fmt.Sprintf("submissions/%s/%s-%s%s",
		sanitizeFolderName(dishName), uuid.New().String(), safeBase, ext)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return a.PublicURL(key), nil
}

// PublicURL returns the public URL for an object key.
func (a *Adapter) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.digitaloceanspaces.com/%s/%s", a.region, a.bucket, key)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename splits a filename into a safe base and extension. The
// base is capped at 80 characters; anything outside the safe set becomes an
// underscore.
func sanitizeFilename(filename string) (string, string) {
	ext := ".jpg"
	base := filename
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = "." + unsafeChars.ReplaceAllString(strings.ToLower(filename[idx+1:]), "")
		base = filename[:idx]
	}

	safeBase := unsafeChars.ReplaceAllString(base, "_")
	if len(safeBase) > 80 {
		safeBase = safeBase[:80]
	}
	if safeBase == "" {
		safeBase = "image"
	}
	return safeBase, ext
}

var (
	folderUnsafe = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// sanitizeFolderName normalizes a dish name to a safe folder name,
// e.g. "Plantain (boiled)" -> "plantain-boiled".
func sanitizeFolderName(dishName string) string {
	normalized := strings.ToLower(dishName)
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "(", "")
	normalized = strings.ReplaceAll(normalized, ")", "")
	normalized = folderUnsafe.ReplaceAllString(normalized, "-")
	normalized = dashRuns.ReplaceAllString(normalized, "-")
	normalized = strings.Trim(normalized, "-")
	if normalized == "" {
		return "other"
	}
	return normalized
}
