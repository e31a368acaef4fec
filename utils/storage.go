// utils/storage.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var assetClient *s3.Client
var assetBucket string
var assetCDNBaseURL string

// InitAssetStore configures the R2-backed asset store used for game
// thumbnails and achievement badge art.
func InitAssetStore() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	assetBucket = os.Getenv("R2_BUCKET_NAME")
	assetCDNBaseURL = os.Getenv("CDN_BASE_URL")
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	if assetCDNBaseURL == "" {
		assetCDNBaseURL = endpoint
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
	)
	if err != nil {
		return fmt.Errorf("failed to load asset store config: %w", err)
	}

	assetClient = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return nil
}

// AssetKey builds a stable object key like "thumbnails/neon-runner-1a2b3c.png"
// from a human-readable name.
func AssetKey(prefix, name, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%s-%s%s", prefix, slug.Make(name), uuid.NewString()[:8], ext)
}

// UploadAsset uploads a multipart file under the given key and returns the
// public CDN URL.
func UploadAsset(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = assetClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(assetBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	return fmt.Sprintf("%s/%s", assetCDNBaseURL, key), nil
}
