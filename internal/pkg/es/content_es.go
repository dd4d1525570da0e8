package es

import (
	"strconv"
	"time"

	"Folio/internal/model"
	"Folio/internal/pkg/consts"
	"Folio/internal/pkg/util"
)

const (
	KindMedia = "media"
	// 写入索引的正文上限
	maxIndexedText = 5000
)

// ContentES 写入 ES 的检索文档
type ContentES struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug,omitempty"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

// DocID 不同类型的 ID 可能重复，以 kind 作前缀
func DocID(kind, id string) string {
	return kind + ":" + id
}

func FromMedia(m *model.Media) *ContentES {
	text := ""
	if m.Content != nil {
		text = *m.Content
	}
	title := util.Truncate(text, 60)
	if title == "" {
		title = m.Type
	}
	return &ContentES{
		Kind:      KindMedia,
		ID:        m.ID,
		Title:     title,
		Text:      util.Truncate(text, maxIndexedText),
		Tags:      []string(m.Tags),
		Public:    m.Classification != consts.ClassificationDraft,
		CreatedAt: m.CreatedAt,
	}
}

// FromContent kind 为 articles / projects / posts
func FromContent(kind string, c *model.ContentBase) *ContentES {
	return &ContentES{
		Kind:      kind,
		ID:        strconv.FormatUint(c.ID, 10),
		Title:     c.Title,
		Slug:      c.Slug,
		Text:      util.Excerpt(c.Body, maxIndexedText),
		Tags:      []string(c.Tags),
		Public:    c.Published,
		CreatedAt: c.Timestamp(),
	}
}
