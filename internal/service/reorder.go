package service

import (
	"context"
	"strings"

	"Folio/internal/api/dto"
	"Folio/internal/pkg/consts"

	"golang.org/x/sync/errgroup"
)

// reorderConcurrency 单次排序请求的并发写入上限
const reorderConcurrency = 8

// checkReorder 排序只在单一分类视图下有意义
func checkReorder(in *dto.ReorderDTO) error {
	scope := strings.ToLower(strings.TrimSpace(in.Scope))
	if scope == consts.ReorderScopeAll ||
		scope == consts.ReorderScopeSearch ||
		strings.HasPrefix(scope, consts.ReorderScopeSearch+":") {
		return ErrReorderScope
	}
	if len(in.Updates) == 0 || len(in.Updates) > consts.MaxReorderSize {
		return ErrParamInvalid
	}

	seen := make(map[string]struct{}, len(in.Updates))
	for _, u := range in.Updates {
		if u.ID == "" || u.SortOrder < 0 {
			return ErrParamInvalid
		}
		if _, ok := seen[u.ID]; ok {
			return ErrReorderDuplicate
		}
		seen[u.ID] = struct{}{}
	}
	return nil
}

// applyReorder 每条更新独立并发写入，不在同一事务内，返回第一个失败
func applyReorder(ctx context.Context, updates []dto.ReorderItem, update func(ctx context.Context, item dto.ReorderItem) error) error {
	// 不用 WithContext，单条失败不能取消其余写入
	var g errgroup.Group
	g.SetLimit(reorderConcurrency)
	for _, item := range updates {
		g.Go(func() error {
			return update(ctx, item)
		})
	}
	return g.Wait()
}

func reorderIDs(updates []dto.ReorderItem) []string {
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		ids = append(ids, u.ID)
	}
	return ids
}
