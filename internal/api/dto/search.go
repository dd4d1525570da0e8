package dto

import "time"

type SearchDTO struct {
	PageDTO
	Query string `form:"q" validate:"required,max=100"`
}

type SearchHitDTO struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
