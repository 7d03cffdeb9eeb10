package storage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/internal/config"
)

const presignExpiry = 15 * time.Minute

// Uploads hands out presigned S3 PUT URLs so the admin console can upload
// therapy and affiliation images directly to the bucket.
type Uploads struct {
	cfg config.StoreConfig
}

func NewUploads(cfg config.StoreConfig) *Uploads {
	return &Uploads{cfg: cfg}
}

func (u *Uploads) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(u.cfg.GetS3Region()),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.GetS3AccessKey(),
			u.cfg.GetS3SecretKey(),
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := u.cfg.GetS3Endpoint(); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return s3.NewPresignClient(client), nil
}

// storageKey spreads uploads by date so the bucket stays browsable.
func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%02d/%v%s", d.Year(), d.Month(), uuid.New(), path.Ext(filename))
}

// PresignPut returns the object key and a presigned PUT URL valid for
// fifteen minutes.
func (u *Uploads) PresignPut(ctx context.Context, filename string) (string, string, error) {
	presignClient, err := u.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := u.cfg.GetS3Bucket()
	key := storageKey(filename)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}
