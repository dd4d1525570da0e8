// Package ordering 维护拖拽排序的已提交快照与待保存顺序
package ordering

import "errors"

var ErrOutOfRange = errors.New("position out of range")

// Position 一条记录与其在分类内的位置
type Position struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

// Draft 乐观排序状态：committed 为最近一次保存成功的顺序，pending 为当前展示顺序
type Draft struct {
	committed []string
	pending   []string
}

func NewDraft(ids []string) *Draft {
	return &Draft{
		committed: clone(ids),
		pending:   clone(ids),
	}
}

// Move 将 from 位置的记录移动到 to 位置
func (d *Draft) Move(from, to int) error {
	n := len(d.pending)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrOutOfRange
	}
	if from == to {
		return nil
	}
	id := d.pending[from]
	next := make([]string, 0, n)
	next = append(next, d.pending[:from]...)
	next = append(next, d.pending[from+1:]...)
	next = append(next[:to], append([]string{id}, next[to:]...)...)
	d.pending = next
	return nil
}

// MoveID 按 id 移动，记录不存在时返回 ErrOutOfRange
func (d *Draft) MoveID(id string, to int) error {
	for i, v := range d.pending {
		if v == id {
			return d.Move(i, to)
		}
	}
	return ErrOutOfRange
}

// Dirty 是否存在未保存的改动
func (d *Draft) Dirty() bool {
	for i := range d.pending {
		if d.pending[i] != d.committed[i] {
			return true
		}
	}
	return false
}

// Order 当前展示顺序
func (d *Draft) Order() []string {
	return clone(d.pending)
}

// Updates 按当前顺序生成从 0 开始的连续位置
func (d *Draft) Updates() []Position {
	out := make([]Position, len(d.pending))
	for i, id := range d.pending {
		out[i] = Position{ID: id, SortOrder: i}
	}
	return out
}

// Commit 保存成功后以当前顺序作为新的快照
func (d *Draft) Commit() {
	d.committed = clone(d.pending)
}

// Rollback 保存失败时恢复到快照
func (d *Draft) Rollback() {
	d.pending = clone(d.committed)
}

func clone(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
