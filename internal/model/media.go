package model

import (
	"time"
)

// Media 上传的资源或文字记录
type Media struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	Type           string    `gorm:"type:varchar(16);not null;index:idx_type" json:"type"` // image, video, pdf, text
	URL            string    `gorm:"type:varchar(512);not null;default:''" json:"url"`
	Content        *string   `gorm:"type:mediumtext" json:"content"`
	Tags           Tags      `gorm:"type:json" json:"tags"`
	ContentID      *string   `gorm:"type:char(36);index:idx_content_id" json:"content_id"`
	SortOrder      int       `gorm:"not null;default:0" json:"sort_order"`
	Classification string    `gorm:"type:varchar(16);not null;default:'draft';index:idx_classification" json:"classification"`
	Width          int       `gorm:"not null;default:0" json:"width"`
	Height         int       `gorm:"not null;default:0" json:"height"`
	CreatedAt      time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Media) TableName() string {
	return "media"
}
