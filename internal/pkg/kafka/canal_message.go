package kafka

import (
	"strconv"
	"time"

	"Folio/internal/model"

	"github.com/goccy/go-json"
)

const (
	canalInsert = "INSERT"
	canalUpdate = "UPDATE"
	canalDelete = "DELETE"

	canalTimeLayout = "2006-01-02 15:04:05"
)

// CanalMessage Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`

	// Data 变更后的数据，字段值均为字符串或 null
	Data []map[string]interface{} `json:"data"`
	Old  []map[string]interface{} `json:"old"`
}

type canalRow map[string]interface{}

func (r canalRow) str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func (r canalRow) strPtr(key string) *string {
	if v, ok := r[key]; !ok || v == nil {
		return nil
	}
	s := r.str(key)
	return &s
}

func (r canalRow) uint64(key string) uint64 {
	n, _ := strconv.ParseUint(r.str(key), 10, 64)
	return n
}

func (r canalRow) int(key string) int {
	n, _ := strconv.Atoi(r.str(key))
	return n
}

func (r canalRow) bool(key string) bool {
	s := r.str(key)
	return s == "1" || s == "true"
}

func (r canalRow) time(key string) time.Time {
	t, _ := time.ParseInLocation(canalTimeLayout, r.str(key), time.Local)
	return t
}

func (r canalRow) timePtr(key string) *time.Time {
	if r.strPtr(key) == nil {
		return nil
	}
	t := r.time(key)
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r canalRow) tags(key string) model.Tags {
	var tags model.Tags
	_ = tags.Scan(r.str(key))
	return tags
}

func (r canalRow) toMedia() *model.Media {
	return &model.Media{
		ID:             r.str("id"),
		Type:           r.str("type"),
		URL:            r.str("url"),
		Content:        r.strPtr("content"),
		Tags:           r.tags("tags"),
		ContentID:      r.strPtr("content_id"),
		SortOrder:      r.int("sort_order"),
		Classification: r.str("classification"),
		Width:          r.int("width"),
		Height:         r.int("height"),
		CreatedAt:      r.time("created_at"),
		UpdatedAt:      r.time("updated_at"),
	}
}

func (r canalRow) toContentBase() *model.ContentBase {
	return &model.ContentBase{
		ID:          r.uint64("id"),
		Title:       r.str("title"),
		Slug:        r.str("slug"),
		Body:        r.str("body"),
		CoverImage:  r.str("cover_image"),
		Published:   r.bool("published"),
		PublishedAt: r.timePtr("published_at"),
		Tags:        r.tags("tags"),
		CreatedAt:   r.time("created_at"),
		UpdatedAt:   r.time("updated_at"),
	}
}
