package dto

// BatchDTO 批量操作请求
type BatchDTO struct {
	IDs      []string `json:"ids" validate:"required,min=1,max=500,dive,required"`
	Action   string   `json:"action" validate:"required"`
	Target   string   `json:"target"`
	TargetID *string  `json:"targetId"`
}

// BatchResult 批量操作结果，按操作返回 updated 或 deleted
type BatchResult struct {
	Updated *int64 `json:"updated,omitempty"`
	Deleted *int64 `json:"deleted,omitempty"`
}

// UpdatedResult 构造 {updated: n}
func UpdatedResult(n int64) *BatchResult {
	return &BatchResult{Updated: &n}
}

// DeletedResult 构造 {deleted: n}
func DeletedResult(n int64) *BatchResult {
	return &BatchResult{Deleted: &n}
}
