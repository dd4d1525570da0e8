package dto

import "time"

// MediaTempMetadata 上传后写入 redis 的临时元数据，入库后删除
type MediaTempMetadata struct {
	Bucket    string `json:"bucket"`
	Object    string `json:"object"`
	MimeType  string `json:"mime_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt int64  `json:"created_at"`
}

// MediaUploadDTO multipart 表单中除文件外的字段
type MediaUploadDTO struct {
	Bucket         string  `form:"bucket"`
	Classification string  `form:"classification" validate:"omitempty,oneof=draft professional personal"`
	Module         string  `form:"module"`
	ContentID      *string `form:"content_id"`
}

type CreateTextDTO struct {
	Content        string  `json:"content" validate:"required"`
	Classification string  `json:"classification" validate:"omitempty,oneof=draft professional personal"`
	Module         string  `json:"module"`
	ContentID      *string `json:"content_id"`
}

type UpdateMediaDTO struct {
	Content        *string   `json:"content"`
	Classification *string   `json:"classification" validate:"omitempty,oneof=draft professional personal"`
	Tags           *[]string `json:"tags"`
	ContentID      *string   `json:"content_id"`
}

// MediaQueryDTO 后台媒体检索条件
type MediaQueryDTO struct {
	PageDTO
	Module         string `form:"module"`
	Classification string `form:"classification" validate:"omitempty,oneof=draft professional personal"`
	Type           string `form:"type" validate:"omitempty,oneof=image video pdf text"`
	Query          string `form:"q"`
}

type MediaDTO struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	URL            string    `json:"url"`
	Content        *string   `json:"content"`
	Tags           []string  `json:"tags"`
	ContentID      *string   `json:"content_id"`
	SortOrder      int       `json:"sort_order"`
	Classification string    `json:"classification"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
