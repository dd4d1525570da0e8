package minio

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ErrNotStorageURL URL 不指向本存储
var ErrNotStorageURL = errors.New("url does not point to object storage")

// Upload 上传对象，返回对象名
func (s *Storage) Upload(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s/%s", bucket, objectName)
	}
	return info.Key, nil
}

// Remove 批量删除同一个桶内的对象，返回第一个失败
func (s *Storage) Remove(ctx context.Context, bucket string, objectNames []string) error {
	if len(objectNames) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(objectNames))
	for _, name := range objectNames {
		objectsCh <- minio.ObjectInfo{Key: name}
	}
	close(objectsCh)

	var firstErr error
	for rErr := range s.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if firstErr == nil && rErr.Err != nil {
			firstErr = errors.Wrapf(rErr.Err, "remove %s/%s", bucket, rErr.ObjectName)
		}
	}
	return firstErr
}

// Copy 将对象复制到另一个桶，对象名保持不变
func (s *Storage) Copy(ctx context.Context, srcBucket, objectName, dstBucket string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dstBucket, Object: objectName},
		minio.CopySrcOptions{Bucket: srcBucket, Object: objectName},
	)
	return errors.Wrapf(err, "copy %s/%s to %s", srcBucket, objectName, dstBucket)
}

// ReadText 读取文本对象，最多读取 limit 字节
func (s *Storage) ReadText(ctx context.Context, bucket, objectName string, limit int64) (string, error) {
	obj, err := s.client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return "", errors.Wrapf(err, "get %s/%s", bucket, objectName)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(io.LimitReader(obj, limit))
	if err != nil {
		return "", errors.Wrapf(err, "read %s/%s", bucket, objectName)
	}
	return string(data), nil
}

// PublicURL 获取对象的公共访问URL
func (s *Storage) PublicURL(bucket, objectName string) string {
	return BuildObjectURL(s.publicBase, bucket, objectName)
}

// Locate 从公共URL解析出桶名与对象名
func (s *Storage) Locate(rawURL string) (bucket, objectName string, err error) {
	bucket, objectName, err = ParseObjectURL(rawURL)
	if err != nil {
		return "", "", err
	}
	if !s.HasBucket(bucket) {
		return "", "", errors.Wrapf(ErrNotStorageURL, "unknown bucket %q", bucket)
	}
	return bucket, objectName, nil
}

// BuildObjectURL 拼接 path-style 的对象URL
func BuildObjectURL(base, bucket, objectName string) string {
	segments := strings.Split(objectName, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.Join(segments, "/")
}

// ParseObjectURL 解析 path-style 对象URL：{scheme}://{host}/{bucket}/{object}
func ParseObjectURL(rawURL string) (bucket, objectName string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", errors.Wrap(ErrNotStorageURL, err.Error())
	}

	p := strings.TrimPrefix(u.Path, "/")
	bucket, objectName, found := strings.Cut(p, "/")
	if !found || bucket == "" || objectName == "" {
		return "", "", errors.Wrapf(ErrNotStorageURL, "%q", rawURL)
	}
	return bucket, objectName, nil
}
