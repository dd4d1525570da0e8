package dto

import "time"

type ContentDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Body        string     `json:"body,omitempty"`
	Excerpt     string     `json:"excerpt"`
	CoverImage  string     `json:"cover_image"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	Tags        []string   `json:"tags"`
	Summary     string     `json:"summary,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`
	RepoURL     string     `json:"repo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SaveContentDTO 创建与更新共用，更新时空字段不修改
type SaveContentDTO struct {
	Title       string   `json:"title" validate:"omitempty,max=255"`
	Slug        string   `json:"slug" validate:"omitempty,max=255"`
	Body        *string  `json:"body"`
	CoverImage  *string  `json:"cover_image" validate:"omitempty,max=512"`
	Published   *bool    `json:"published"`
	Tags        []string `json:"tags"`
	Summary     *string  `json:"summary" validate:"omitempty,max=512"`
	ExternalURL *string  `json:"external_url" validate:"omitempty,max=512"`
	RepoURL     *string  `json:"repo_url" validate:"omitempty,max=512"`
}
