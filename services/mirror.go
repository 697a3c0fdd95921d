package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"obrafoto/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Mirror copies uploaded originals to an S3 bucket as an off-site backup.
// It is best effort: a mirror failure is logged and never fails the upload
// that triggered it.
type Mirror struct {
	client *s3.Client
	bucket string
}

func NewMirror(ctx context.Context, cfg *config.Config) (*Mirror, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Mirror{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.BucketName,
	}, nil
}

// StoreAsync queues one object for upload and returns immediately.
func (m *Mirror) StoreAsync(folder, filename, contentType string, data []byte) {
	key := fmt.Sprintf("obra/%s/originals/%s%s", folder, uuid.New().String(), filepath.Ext(filename))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(m.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			log.Println("mirror upload:", err)
		}
	}()
}
