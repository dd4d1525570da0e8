package dto

import "time"

type ActivityDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	IDs       []string  `json:"ids"`
	Affected  int64     `json:"affected"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
