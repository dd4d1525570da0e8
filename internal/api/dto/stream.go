package dto

import "time"

type StreamQueryDTO struct {
	Module   string `form:"module"`
	Articles bool   `form:"articles"`
	Projects bool   `form:"projects"`
}

type StreamPhotoDTO struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type StreamTextDTO struct {
	ID      string           `json:"id"`
	Content string           `json:"content"`
	Images  []StreamPhotoDTO `json:"images,omitempty"`
}

type StreamContentDTO struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	CoverImage string `json:"cover_image"`
}

type StreamPromoDTO struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// StreamEntryDTO 时间流条目，按 kind 只填充对应字段
type StreamEntryDTO struct {
	Kind      string            `json:"kind"`
	Timestamp time.Time         `json:"timestamp"`
	Photos    []StreamPhotoDTO  `json:"photos,omitempty"`
	Text      *StreamTextDTO    `json:"text,omitempty"`
	Article   *StreamContentDTO `json:"article,omitempty"`
	Project   *StreamContentDTO `json:"project,omitempty"`
	Promo     *StreamPromoDTO   `json:"promo,omitempty"`
}
