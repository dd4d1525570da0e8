package job

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"Folio/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTracker struct {
	entries map[string]*dto.MediaTempMetadata
	done    []string
}

func (f *fakeTracker) Track(_ context.Context, field string, meta *dto.MediaTempMetadata) error {
	f.entries[field] = meta
	return nil
}

func (f *fakeTracker) Done(_ context.Context, fields ...string) error {
	for _, field := range fields {
		delete(f.entries, field)
		f.done = append(f.done, field)
	}
	return nil
}

func (f *fakeTracker) Expired(_ context.Context, before time.Time) (map[string]*dto.MediaTempMetadata, error) {
	out := make(map[string]*dto.MediaTempMetadata)
	for k, v := range f.entries {
		if v.CreatedAt < before.Unix() {
			out[k] = v
		}
	}
	return out, nil
}

type fakeStorage struct {
	removed map[string][]string
	failFor string
}

func (f *fakeStorage) MainBucket() string { return "media" }
func (f *fakeStorage) HasBucket(string) bool { return true }
func (f *fakeStorage) PublicURL(b, o string) string { return "http://cdn/" + b + "/" + o }
func (f *fakeStorage) Locate(string) (string, string, error) { return "", "", errors.New("unused") }
func (f *fakeStorage) Upload(context.Context, string, string, io.Reader, int64, string) (string, error) {
	return "", nil
}
func (f *fakeStorage) Copy(context.Context, string, string, string) error { return nil }
func (f *fakeStorage) ReadText(context.Context, string, string, int64) (string, error) {
	return "", nil
}
func (f *fakeStorage) Remove(_ context.Context, bucket string, objects []string) error {
	if bucket == f.failFor {
		return errors.New("storage down")
	}
	f.removed[bucket] = append(f.removed[bucket], objects...)
	return nil
}

func TestMediaCleanupJob_Cleanup(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tracker := &fakeTracker{entries: map[string]*dto.MediaTempMetadata{
		"media/old.png":   {Bucket: "media", Object: "old.png", CreatedAt: now.Add(-25 * time.Hour).Unix()},
		"media/fresh.png": {Bucket: "media", Object: "fresh.png", CreatedAt: now.Add(-time.Hour).Unix()},
		"archive/old.pdf": {Bucket: "archive", Object: "old.pdf", CreatedAt: now.Add(-48 * time.Hour).Unix()},
		"broken":          {},
	}}
	storage := &fakeStorage{removed: map[string][]string{}, failFor: "archive"}

	j := NewMediaCleanupJob(tracker, storage)
	j.now = func() time.Time { return now }

	count, err := j.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, []string{"old.png"}, storage.removed["media"])
	assert.Contains(t, tracker.entries, "media/fresh.png")
	// 删除失败的对象保留记录，下次重试
	assert.Contains(t, tracker.entries, "archive/old.pdf")
	assert.NotContains(t, tracker.entries, "media/old.png")
	assert.NotContains(t, tracker.entries, "broken")
}
