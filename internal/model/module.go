package model

import "time"

// Module 内容模块，如 photography / articles
type Module struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_module_slug" json:"slug"`
	Name        string    `gorm:"type:varchar(64);not null" json:"name"`
	Icon        string    `gorm:"type:varchar(64);not null;default:''" json:"icon"`
	AccentColor string    `gorm:"type:varchar(16);not null;default:''" json:"accent_color"`
	Enabled     bool      `gorm:"type:tinyint(1);not null;default:1" json:"enabled"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	Category    string    `gorm:"type:varchar(16);not null;default:'work'" json:"category"` // work, personal
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Module) TableName() string {
	return "modules"
}
