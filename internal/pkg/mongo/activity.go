package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityModel 后台批量操作与排序的操作记录
type ActivityModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`           // 操作人
	Action    string             `bson:"action" json:"action"`         // reorder, batch:add_tag ...
	Target    string             `bson:"target" json:"target"`         // 批量操作目标，如标签或存储桶
	IDs       []string           `bson:"ids" json:"ids"`               // 请求中的记录ID
	Affected  int64              `bson:"affected" json:"affected"`     // 影响行数
	Error     string             `bson:"error,omitempty" json:"error"` // 失败原因
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
