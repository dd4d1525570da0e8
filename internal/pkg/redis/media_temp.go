package redis

import (
	"context"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/pkg/consts"

	"github.com/goccy/go-json"
)

// MediaTempStore 记录已上传但尚未入库的对象，field 为 bucket/object
type MediaTempStore struct{}

func NewMediaTempStore() *MediaTempStore {
	return &MediaTempStore{}
}

func (MediaTempStore) Track(ctx context.Context, field string, meta *dto.MediaTempMetadata) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return HSet(ctx, consts.MediaTempKey, field, string(b))
}

func (MediaTempStore) Done(ctx context.Context, fields ...string) error {
	return HDel(ctx, consts.MediaTempKey, fields...)
}

// Expired 创建时间早于 before 的记录，无法解析的记录同样视为过期
func (MediaTempStore) Expired(ctx context.Context, before time.Time) (map[string]*dto.MediaTempMetadata, error) {
	all, err := HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*dto.MediaTempMetadata)
	for field, raw := range all {
		meta := &dto.MediaTempMetadata{}
		if err = json.Unmarshal([]byte(raw), meta); err != nil {
			out[field] = meta
			continue
		}
		if meta.CreatedAt < before.Unix() {
			out[field] = meta
		}
	}
	return out, nil
}
