package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"Folio/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReorder_FailureDoesNotCancelOthers(t *testing.T) {
	updates := []dto.ReorderItem{{ID: "a", SortOrder: 0}}
	for i := 1; i < 20; i++ {
		updates = append(updates, dto.ReorderItem{ID: "m" + strconv.Itoa(i), SortOrder: i})
	}

	var mu sync.Mutex
	written := map[string]int{}
	err := applyReorder(context.Background(), updates, func(ctx context.Context, item dto.ReorderItem) error {
		if item.ID == "a" {
			return errors.New("deadlock found")
		}
		time.Sleep(5 * time.Millisecond)
		if err := ctx.Err(); err != nil {
			return err
		}
		mu.Lock()
		written[item.ID] = item.SortOrder
		mu.Unlock()
		return nil
	})

	require.EqualError(t, err, "deadlock found")
	assert.Len(t, written, 19)
	assert.Equal(t, 7, written["m7"])
}

func TestCheckReorder(t *testing.T) {
	cases := []struct {
		name string
		in   dto.ReorderDTO
		want error
	}{
		{"all scope", dto.ReorderDTO{Scope: "All", Updates: []dto.ReorderItem{{ID: "a"}}}, ErrReorderScope},
		{"search scope", dto.ReorderDTO{Scope: "search:cats", Updates: []dto.ReorderItem{{ID: "a"}}}, ErrReorderScope},
		{"empty", dto.ReorderDTO{}, ErrParamInvalid},
		{"negative", dto.ReorderDTO{Updates: []dto.ReorderItem{{ID: "a", SortOrder: -1}}}, ErrParamInvalid},
		{"duplicate", dto.ReorderDTO{Updates: []dto.ReorderItem{{ID: "a"}, {ID: "a", SortOrder: 1}}}, ErrReorderDuplicate},
		{"ok", dto.ReorderDTO{Scope: "travel", Updates: []dto.ReorderItem{{ID: "a"}, {ID: "b", SortOrder: 1}}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, checkReorder(&tc.in), tc.want)
		})
	}
}
