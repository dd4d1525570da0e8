package minio

import (
	"Folio/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Storage 对象存储，对外暴露 upload / remove / public url 等能力
type Storage struct {
	client     *minio.Client
	mainBucket string
	buckets    map[string]struct{}
	publicBase string
}

// NewStorage 初始化 MinIO 客户端并确保所有配置的桶存在
func NewStorage(ctx context.Context, cfg config.MinIOConfig) (*Storage, error) {
	endpoint := cfg.InternalEndpoint
	useSSL := cfg.InternalUseSSL
	if endpoint == "" {
		endpoint = cfg.ExternalEndpoint
		useSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	if _, err = client.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}

	s := newStorage(client, cfg)
	for bucket := range s.buckets {
		if err = s.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newStorage(client *minio.Client, cfg config.MinIOConfig) *Storage {
	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}
	external := cfg.ExternalEndpoint
	if external == "" {
		external = cfg.InternalEndpoint
	}

	buckets := map[string]struct{}{cfg.MainBucket: {}}
	for _, b := range cfg.Buckets {
		buckets[b] = struct{}{}
	}

	return &Storage{
		client:     client,
		mainBucket: cfg.MainBucket,
		buckets:    buckets,
		publicBase: scheme + "://" + external,
	}
}

// ensureBucket 创建缺失的桶并开放匿名读
func (s *Storage) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	if err = s.client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("set bucket policy %s: %w", bucket, err)
	}
	log.Info("created storage bucket", "bucket", bucket)
	return nil
}

// MainBucket 默认上传桶
func (s *Storage) MainBucket() string {
	return s.mainBucket
}

// HasBucket 判断桶是否在配置列表内
func (s *Storage) HasBucket(bucket string) bool {
	_, ok := s.buckets[bucket]
	return ok
}
