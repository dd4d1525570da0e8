package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"Folio/internal/api/dto"
	"Folio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longAgo = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

func mediaFixture() *fakeMediaRepo {
	return newFakeMediaRepo(
		&model.Media{ID: "p1", Type: "text", Tags: model.Tags{"travel"}, Classification: "draft", CreatedAt: longAgo,
			URL: "https://cdn.test/main/p1.txt"},
		&model.Media{ID: "c1", Type: "image", Tags: model.Tags{}, ContentID: strPtr("p1"), Classification: "draft", CreatedAt: longAgo,
			URL: "https://cdn.test/main/c1.jpg"},
		&model.Media{ID: "p2", Type: "image", Tags: model.Tags{"food"}, Classification: "draft", CreatedAt: longAgo,
			URL: "https://cdn.test/archive/p2.jpg"},
	)
}

func newTestMediaService(repo *fakeMediaRepo, storage *fakeStorage) MediaService {
	modules := newFakeModuleRepo(&model.Module{ID: 9, Slug: "work"})
	return NewMediaService(repo, modules, storage, newFakeUploads(), NewActivityService(nil))
}

func TestBatch_AddTagIsIdempotent(t *testing.T) {
	repo := mediaFixture()
	svc := newTestMediaService(repo, newFakeStorage("main"))

	res, err := svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1", "p2"}, Action: "add_tag", Target: "travel"})
	require.NoError(t, err)
	require.NotNil(t, res.Updated)
	assert.Equal(t, int64(3), *res.Updated)
	assert.Equal(t, model.Tags{"travel"}, repo.get("p1").Tags)
	assert.Equal(t, model.Tags{"travel"}, repo.get("c1").Tags)
	assert.Equal(t, model.Tags{"food", "travel"}, repo.get("p2").Tags)
	assert.Equal(t, 2, repo.tagWrites)

	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1", "p2"}, Action: "add_tag", Target: "travel"})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.tagWrites)
}

func TestBatch_AssignModule(t *testing.T) {
	repo := mediaFixture()
	svc := newTestMediaService(repo, newFakeStorage("main"))

	targetID := "9"
	res, err := svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "assign_module", TargetID: &targetID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), *res.Updated)
	assert.Equal(t, model.Tags{"work"}, repo.get("p1").Tags)
	assert.Equal(t, model.Tags{"work"}, repo.get("c1").Tags)

	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "assign_module", Target: "uncategorized"})
	require.NoError(t, err)
	assert.Empty(t, repo.get("p1").Tags)
	assert.Empty(t, repo.get("c1").Tags)

	missing := "404"
	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "assign_module", TargetID: &missing})
	assert.ErrorIs(t, err, ErrModuleNotFound)

	bad := "work"
	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "assign_module", TargetID: &bad})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestBatch_DeleteGroupsByBucketAndIgnoresStorageFailure(t *testing.T) {
	repo := mediaFixture()
	storage := newFakeStorage("main", "archive")
	storage.failRm["archive"] = true
	svc := newTestMediaService(repo, storage)

	res, err := svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1", "p2"}, Action: "delete"})
	require.NoError(t, err)
	require.NotNil(t, res.Deleted)
	assert.Equal(t, int64(3), *res.Deleted)
	assert.Nil(t, res.Updated)

	assert.ElementsMatch(t, []string{"p1.txt", "c1.jpg"}, storage.removed["main"])
	assert.Equal(t, []string{"p2.jpg"}, storage.removed["archive"])
	assert.Nil(t, repo.get("p1"))
	assert.Nil(t, repo.get("c1"))
	assert.Nil(t, repo.get("p2"))
}

func TestBatch_UpdateClassificationBumpsCreatedAt(t *testing.T) {
	repo := mediaFixture()
	svc := newTestMediaService(repo, newFakeStorage("main"))
	before := time.Now()

	res, err := svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "update_classification", Target: "professional"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), *res.Updated)
	for _, id := range []string{"p1", "c1"} {
		m := repo.get(id)
		assert.Equal(t, "professional", m.Classification)
		assert.False(t, m.CreatedAt.Before(before))
	}

	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p2"}, Action: "update_classification", Target: "draft"})
	require.NoError(t, err)
	assert.Equal(t, longAgo, repo.get("p2").CreatedAt)

	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p2"}, Action: "update_classification", Target: "secret"})
	assert.ErrorIs(t, err, ErrClassificationBad)
}

func TestBatch_MoveBucketDoesNotCascade(t *testing.T) {
	repo := mediaFixture()
	storage := newFakeStorage("main", "archive")
	svc := newTestMediaService(repo, storage)

	res, err := svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "move_bucket", Target: "archive"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), *res.Updated)
	assert.Equal(t, "https://cdn.test/archive/p1.txt", repo.get("p1").URL)
	assert.Equal(t, "https://cdn.test/main/c1.jpg", repo.get("c1").URL)
	assert.Equal(t, []string{"main/p1.txt->archive"}, storage.copied)
	assert.Equal(t, []string{"p1.txt"}, storage.removed["main"])

	_, err = svc.Batch(context.Background(), &dto.BatchDTO{IDs: []string{"p1"}, Action: "move_bucket", Target: "nowhere"})
	assert.ErrorIs(t, err, ErrBucketNotAllowed)
}

func TestBatch_Rejects(t *testing.T) {
	svc := newTestMediaService(mediaFixture(), newFakeStorage("main"))
	ctx := context.Background()

	_, err := svc.Batch(ctx, &dto.BatchDTO{IDs: []string{"p1"}, Action: "explode"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = svc.Batch(ctx, &dto.BatchDTO{IDs: []string{"p1"}, Action: "add_tag"})
	assert.ErrorIs(t, err, ErrTargetRequired)

	_, err = svc.Batch(ctx, &dto.BatchDTO{Action: "delete"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestReorder(t *testing.T) {
	repo := mediaFixture()
	svc := newTestMediaService(repo, newFakeStorage("main"))

	err := svc.Reorder(context.Background(), &dto.ReorderDTO{Updates: []dto.ReorderItem{
		{ID: "p1", SortOrder: 1},
		{ID: "p2", SortOrder: 0},
	}})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"p1": 1, "p2": 0}, repo.sortWrites)
}

func TestReorder_RejectsWithoutWrites(t *testing.T) {
	cases := []struct {
		name string
		in   *dto.ReorderDTO
		want error
	}{
		{"all scope", &dto.ReorderDTO{Scope: "all", Updates: []dto.ReorderItem{{ID: "p1", SortOrder: 0}}}, ErrReorderScope},
		{"search scope", &dto.ReorderDTO{Scope: "search:lake", Updates: []dto.ReorderItem{{ID: "p1", SortOrder: 0}}}, ErrReorderScope},
		{"empty", &dto.ReorderDTO{}, ErrParamInvalid},
		{"negative", &dto.ReorderDTO{Updates: []dto.ReorderItem{{ID: "p1", SortOrder: -1}}}, ErrParamInvalid},
		{"duplicate", &dto.ReorderDTO{Updates: []dto.ReorderItem{{ID: "p1", SortOrder: 0}, {ID: "p1", SortOrder: 1}}}, ErrReorderDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mediaFixture()
			svc := newTestMediaService(repo, newFakeStorage("main"))
			err := svc.Reorder(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, repo.sortWrites)
		})
	}
}

func TestReorder_PartialFailure(t *testing.T) {
	repo := mediaFixture()
	repo.failSortFor = "p2"
	svc := newTestMediaService(repo, newFakeStorage("main"))

	err := svc.Reorder(context.Background(), &dto.ReorderDTO{Updates: []dto.ReorderItem{
		{ID: "p1", SortOrder: 4},
		{ID: "p2", SortOrder: 5},
	}})
	assert.Error(t, err)
	assert.Equal(t, 4, repo.get("p1").SortOrder)
}

func TestMove(t *testing.T) {
	repo := newFakeMediaRepo(
		&model.Media{ID: "a", Type: "image", Tags: model.Tags{"work"}, SortOrder: 0},
		&model.Media{ID: "b", Type: "image", Tags: model.Tags{"work"}, SortOrder: 1},
		&model.Media{ID: "c", Type: "image", Tags: model.Tags{"work"}, SortOrder: 2},
	)
	svc := newTestMediaService(repo, newFakeStorage("main"))

	positions, err := svc.Move(context.Background(), &dto.MoveDTO{Module: "work", ID: "c", To: 0})
	require.NoError(t, err)
	require.Len(t, positions, 3)
	assert.Equal(t, "c", positions[0].ID)
	assert.Equal(t, map[string]int{"c": 0, "a": 1, "b": 2}, repo.sortWrites)

	_, err = svc.Move(context.Background(), &dto.MoveDTO{Module: "work", ID: "c", To: 7})
	assert.ErrorIs(t, err, ErrPositionOutOfRange)
}

func TestUpload(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	repo := newFakeMediaRepo(&model.Media{ID: "x", Type: "image", Tags: model.Tags{"work"}, SortOrder: 4})
	storage := newFakeStorage("main")
	uploads := newFakeUploads()
	svc := NewMediaService(repo, newFakeModuleRepo(), storage, uploads, NewActivityService(nil))

	out, err := svc.Upload(context.Background(),
		&UploadFile{Name: "Shot.PNG", Size: int64(buf.Len()), Reader: bytes.NewReader(buf.Bytes())},
		&dto.MediaUploadDTO{Module: "work"})
	require.NoError(t, err)

	assert.Equal(t, "image", out.Type)
	assert.Equal(t, 4, out.Width)
	assert.Equal(t, 3, out.Height)
	assert.Equal(t, 5, out.SortOrder)
	assert.Equal(t, "draft", out.Classification)
	assert.Contains(t, out.URL, "https://cdn.test/main/")
	assert.Contains(t, out.URL, ".png")
	assert.Empty(t, uploads.tracked)
	assert.Len(t, uploads.done, 1)

	_, err = svc.Upload(context.Background(),
		&UploadFile{Name: "x.bin", Size: 4, Reader: bytes.NewReader([]byte{0x00, 0x01, 0x02, 0x03})},
		&dto.MediaUploadDTO{})
	assert.ErrorIs(t, err, ErrFileNotSupported)
}

func TestUpdateMedia(t *testing.T) {
	repo := mediaFixture()
	svc := newTestMediaService(repo, newFakeStorage("main"))

	content := "rewritten"
	out, err := svc.UpdateMedia(context.Background(), "p1", &dto.UpdateMediaDTO{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "rewritten", *out.Content)

	_, err = svc.UpdateMedia(context.Background(), "p2", &dto.UpdateMediaDTO{Content: &content})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.UpdateMedia(context.Background(), "missing", &dto.UpdateMediaDTO{})
	assert.ErrorIs(t, err, ErrMediaNotFound)

	detach := ""
	_, err = svc.UpdateMedia(context.Background(), "c1", &dto.UpdateMediaDTO{ContentID: &detach})
	require.NoError(t, err)
	assert.Nil(t, repo.get("c1").ContentID)
}

func TestUpdateMedia_ParentWithChildrenCannotBecomeChild(t *testing.T) {
	repo := mediaFixture()
	svc := newTestMediaService(repo, newFakeStorage("main"))

	parent := "p2"
	_, err := svc.UpdateMedia(context.Background(), "p1", &dto.UpdateMediaDTO{ContentID: &parent})
	assert.ErrorIs(t, err, ErrParamInvalid)
	assert.Nil(t, repo.get("p1").ContentID)

	_, err = svc.UpdateMedia(context.Background(), "c1", &dto.UpdateMediaDTO{ContentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, "p2", *repo.get("c1").ContentID)
}
