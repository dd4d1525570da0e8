package job

import (
	"context"
	log "log/slog"
	"time"

	"Folio/internal/pkg/logger"
	"Folio/internal/service"

	"github.com/google/uuid"
)

// MediaTempTTL 上传后超过该时长仍未入库的对象视为孤儿
const MediaTempTTL = 24 * time.Hour

type MediaCleanupJob struct {
	uploads service.UploadTracker
	storage service.ObjectStorage
	now     func() time.Time
}

func NewMediaCleanupJob(uploads service.UploadTracker, storage service.ObjectStorage) *MediaCleanupJob {
	return &MediaCleanupJob{
		uploads: uploads,
		storage: storage,
		now:     time.Now,
	}
}

func (s *MediaCleanupJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-media-"+uuid.NewString())
	count, err := s.Cleanup(ctx)
	if err != nil {
		log.ErrorContext(ctx, "media cleanup job failed", "err", err)
		return
	}
	if count > 0 {
		log.InfoContext(ctx, "media cleanup job finished", "cleaned_count", count)
	}
}

// Cleanup 删除过期的临时上传对象及其记录，返回清理数量
func (s *MediaCleanupJob) Cleanup(ctx context.Context) (int, error) {
	expired, err := s.uploads.Expired(ctx, s.now().Add(-MediaTempTTL))
	if err != nil {
		return 0, err
	}

	count := 0
	for field, meta := range expired {
		if meta.Bucket != "" && meta.Object != "" {
			if err = s.storage.Remove(ctx, meta.Bucket, []string{meta.Object}); err != nil {
				log.ErrorContext(ctx, "failed to delete expired object", "field", field, "err", err)
				continue
			}
		}

		if err = s.uploads.Done(ctx, field); err != nil {
			log.ErrorContext(ctx, "failed to remove media temp entry", "field", field, "err", err)
			continue
		}

		count++
		log.InfoContext(ctx, "cleanup expired media resource", "field", field, "mime", meta.MimeType)
	}
	return count, nil
}
