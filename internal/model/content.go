package model

import "time"

// ContentBase 文章、项目、博客共用字段
type ContentBase struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Body        string     `gorm:"type:mediumtext" json:"body"`
	CoverImage  string     `gorm:"type:varchar(512);not null;default:''" json:"cover_image"`
	Published   bool       `gorm:"type:tinyint(1);not null;default:0;index" json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	Tags        Tags       `gorm:"type:json" json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Base 供泛型仓储访问公共字段
func (c *ContentBase) Base() *ContentBase {
	return c
}

// Timestamp 已发布取发布时间，否则取创建时间
func (c *ContentBase) Timestamp() time.Time {
	if c.Published && c.PublishedAt != nil {
		return *c.PublishedAt
	}
	return c.CreatedAt
}

type Article struct {
	ContentBase
}

func (Article) TableName() string {
	return "articles"
}

type Project struct {
	ContentBase
	Summary     string `gorm:"type:varchar(512);not null;default:''" json:"summary"`
	ExternalURL string `gorm:"type:varchar(512);not null;default:''" json:"external_url"`
	RepoURL     string `gorm:"type:varchar(512);not null;default:''" json:"repo_url"`
}

func (Project) TableName() string {
	return "projects"
}

// Post 博客短文
type Post struct {
	ContentBase
}

func (Post) TableName() string {
	return "posts"
}
