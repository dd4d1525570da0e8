package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// Tags 以 JSON 数组存储的标签列表
type Tags []string

// Contains 是否包含指定标签
func (t Tags) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// With 追加标签，已存在时原样返回且 changed 为 false
func (t Tags) With(tag string) (tags Tags, changed bool) {
	if t.Contains(tag) {
		return t, false
	}
	out := make(Tags, len(t), len(t)+1)
	copy(out, t)
	return append(out, tag), true
}

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
	if len(raw) == 0 {
		*t = Tags{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*t = out
	return nil
}

func (Tags) GormDataType() string {
	return "json"
}
