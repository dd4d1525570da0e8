package stream

import (
	"testing"
	"time"

	"Folio/internal/model"
	"Folio/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

func image(id string, hours int) *model.Media {
	return &model.Media{ID: id, Type: consts.MediaTypeImage, CreatedAt: at(hours)}
}

func text(id string, hours int) *model.Media {
	return &model.Media{ID: id, Type: consts.MediaTypeText, CreatedAt: at(hours)}
}

func ids(media []*model.Media) []string {
	out := make([]string, 0, len(media))
	for _, m := range media {
		out = append(out, m.ID)
	}
	return out
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil, nil, nil, nil))
	assert.Empty(t, Build([]*model.Media{}, map[string]string{"x": "y"}, nil, nil))
}

func TestBuild_ConsecutiveImagesFormOneGroup(t *testing.T) {
	for n := 1; n <= 5; n++ {
		media := make([]*model.Media, 0, n)
		want := make([]string, 0, n)
		for i := 0; i < n; i++ {
			id := string(rune('a' + i))
			media = append(media, image(id, -i))
			want = append(want, id)
		}

		entries := Build(media, nil, nil, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, KindPhotos, entries[0].Kind)
		assert.Equal(t, want, ids(entries[0].Photos))
	}
}

func TestBuild_TextSplitsPhotoRuns(t *testing.T) {
	media := []*model.Media{image("i1", 3), text("t1", 2), image("i2", 1)}

	entries := Build(media, map[string]string{"t1": "hello"}, nil, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, KindPhotos, entries[0].Kind)
	assert.Equal(t, []string{"i1"}, ids(entries[0].Photos))
	assert.Equal(t, KindText, entries[1].Kind)
	assert.Equal(t, "hello", entries[1].Content)
	assert.Equal(t, KindPhotos, entries[2].Kind)
	assert.Equal(t, []string{"i2"}, ids(entries[2].Photos))
}

func TestBuild_MissingTextContentIsEmpty(t *testing.T) {
	entries := Build([]*model.Media{text("t1", 0)}, map[string]string{"other": "x"}, nil, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, KindText, entries[0].Kind)
	assert.Equal(t, "", entries[0].Content)

	entries = Build([]*model.Media{text("t1", 0)}, nil, nil, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Content)
}

func TestBuild_VideoAndPDFAreDroppedButCloseRun(t *testing.T) {
	media := []*model.Media{
		image("i1", 5),
		{ID: "v1", Type: consts.MediaTypeVideo, CreatedAt: at(4)},
		image("i2", 3),
		{ID: "p1", Type: consts.MediaTypePDF, CreatedAt: at(2)},
	}

	entries := Build(media, nil, nil, nil)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"i1"}, ids(entries[0].Photos))
	assert.Equal(t, []string{"i2"}, ids(entries[1].Photos))
}

func TestBuild_SortedNewestFirst(t *testing.T) {
	// 图片组只以第一张的时间参与排序，组内时间乱序不影响分组
	media := []*model.Media{
		text("t-old", -10),
		image("i1", -5),
		image("i2", 20),
		image("i3", -8),
		text("t-new", 10),
	}

	entries := Build(media, nil, nil, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, "t-new", entries[0].Text.ID)
	assert.Equal(t, KindPhotos, entries[1].Kind)
	assert.Equal(t, []string{"i1", "i2", "i3"}, ids(entries[1].Photos))
	assert.Equal(t, at(-5), entries[1].Timestamp)
	assert.Equal(t, "t-old", entries[2].Text.ID)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp))
	}
}

func TestBuild_ArticlesAndProjects(t *testing.T) {
	published := at(6)
	articles := []*model.Article{
		{ContentBase: model.ContentBase{ID: 1, Published: true, PublishedAt: &published, CreatedAt: at(-20)}},
	}
	projects := []*model.Project{
		{ContentBase: model.ContentBase{ID: 2, CreatedAt: at(-1)}},
	}

	entries := Build([]*model.Media{image("i1", 0)}, nil, articles, projects)
	require.Len(t, entries, 3)
	assert.Equal(t, KindArticle, entries[0].Kind)
	assert.Equal(t, at(6), entries[0].Timestamp)
	assert.Equal(t, KindPhotos, entries[1].Kind)
	assert.Equal(t, KindProject, entries[2].Kind)
	assert.Equal(t, at(-1), entries[2].Timestamp)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	media := []*model.Media{text("t1", 0), image("i1", 5)}
	_ = Build(media, nil, nil, nil)
	assert.Equal(t, []string{"t1", "i1"}, ids(media))
}

func TestInsertPromo(t *testing.T) {
	entries := Build([]*model.Media{text("a", 3), text("b", 2), text("c", 1)}, nil, nil, nil)
	promo := &Promo{Title: "Resume", Link: "/resume"}

	out := InsertPromo(entries, promo, 1)
	require.Len(t, out, 4)
	assert.Equal(t, KindPromo, out[1].Kind)
	assert.Equal(t, "a", out[0].Text.ID)
	assert.Equal(t, "b", out[2].Text.ID)

	out = InsertPromo(entries, promo, 99)
	require.Len(t, out, 4)
	assert.Equal(t, KindPromo, out[3].Kind)

	out = InsertPromo(nil, promo, 3)
	require.Len(t, out, 1)
	assert.Equal(t, KindPromo, out[0].Kind)

	assert.Len(t, InsertPromo(entries, nil, 1), 3)
}
