package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
)

// Store menyimpan artifact video (script markdown) di bucket MinIO/S3.
type Store struct {
	client     *minio.Client
	bucketName string
	scheme     string
}

// New buat koneksi MinIO dan pastikan bucket ada
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, eris.Wrap(err, "minio: new client")
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, eris.Wrapf(err, "minio: check bucket %s", bucket)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, eris.Wrapf(err, "minio: make bucket %s", bucket)
		}
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &Store{client: cli, bucketName: bucket, scheme: scheme}, nil
}

// UploadBytes implementasi ArtifactStore
func (s *Store) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", eris.Wrapf(err, "minio: put %s", key)
	}

	// URL publik (jika bucket public), kalau private harus generate presigned URL
	return fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.client.EndpointURL().Host, s.bucketName, key), nil
}
