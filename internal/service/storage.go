package service

import (
	"context"
	"io"
	"time"

	"Folio/internal/api/dto"
)

// ObjectStorage 对象存储能力，由 minio.Storage 实现
type ObjectStorage interface {
	MainBucket() string
	HasBucket(bucket string) bool
	Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, bucket string, objectNames []string) error
	Copy(ctx context.Context, srcBucket, objectName, dstBucket string) error
	ReadText(ctx context.Context, bucket, objectName string, limit int64) (string, error)
	PublicURL(bucket, objectName string) string
	Locate(rawURL string) (bucket, objectName string, err error)
}

// UploadTracker 记录尚未入库的上传，供清理任务回收
type UploadTracker interface {
	Track(ctx context.Context, field string, meta *dto.MediaTempMetadata) error
	Done(ctx context.Context, fields ...string) error
	Expired(ctx context.Context, before time.Time) (map[string]*dto.MediaTempMetadata, error)
}

// TokenStore 已注销 token 黑名单
type TokenStore interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}
