package dto

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageDTO 分页参数
type PageDTO struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

func (p *PageDTO) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
}

func (p *PageDTO) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PageResult[T any] struct {
	Total int64 `json:"total"`
	List  []T   `json:"list"`
}
