// Package blob implements receipt storage on MinIO/S3-compatible object
// storage. It is the alternative to inlining receipts as base64 data URLs;
// objects are keyed receipts/{timestamp}-{filename} and exposed through
// pre-signed GET URLs.
package blob

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/submission"
)

const urlExpiry = 7 * 24 * time.Hour

type ReceiptStore struct {
	client *minio.Client
	bucket string
}

var _ submission.ReceiptStore = (*ReceiptStore)(nil) // interface compliance check

// NewReceiptStore connects to object storage and ensures the bucket exists.
func NewReceiptStore(conf *core.Config) (*ReceiptStore, error) {
	mc := conf.Receipts.Minio
	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to object storage")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, mc.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "checking bucket")
	}
	if !exists {
		if err = client.MakeBucket(ctx, mc.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "creating bucket")
		}
	}
	return &ReceiptStore{client: client, bucket: mc.Bucket}, nil
}

// Save uploads the receipt bytes and returns a retrievable URL.
func (s *ReceiptStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "uploading receipt")
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, urlExpiry, nil)
	if err != nil {
		return "", errors.Wrap(err, "presigning receipt URL")
	}
	return u.String(), nil
}
