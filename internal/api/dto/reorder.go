package dto

// ReorderItem 单条排序更新
type ReorderItem struct {
	ID        string `json:"id" validate:"required"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

// ReorderDTO 排序持久化请求，scope 为当前视图
type ReorderDTO struct {
	Updates []ReorderItem `json:"updates" validate:"required,min=1,max=1000,dive"`
	Scope   string        `json:"scope"`
}

// MoveDTO 将模块内某条记录移动到新位置
type MoveDTO struct {
	Module string `json:"module" validate:"required"`
	ID     string `json:"id" validate:"required"`
	To     int    `json:"to" validate:"min=0"`
}
