// Package stream 将媒体记录与文章、项目组合为首页时间流
package stream

import (
	"sort"
	"time"

	"Folio/internal/model"
	"Folio/internal/pkg/consts"
)

type Kind string

const (
	KindPhotos  Kind = "photos"
	KindText    Kind = "text"
	KindArticle Kind = "article"
	KindProject Kind = "project"
	KindPromo   Kind = "promo"
)

// Promo 静态推广卡片
type Promo struct {
	Title string
	Link  string
}

// Entry 时间流中的一个条目，按 Kind 只有对应字段有值
type Entry struct {
	Kind      Kind
	Timestamp time.Time
	Photos    []*model.Media
	Text      *model.Media
	Content   string
	Article   *model.Article
	Project   *model.Project
	Promo     *Promo
}

// Build 按输入顺序把相邻图片合并为一组，文字各自成条，视频与 PDF 不进入时间流，
// 最后按时间倒序排列。相同时间戳的条目之间顺序不保证稳定。
func Build(media []*model.Media, textContents map[string]string, articles []*model.Article, projects []*model.Project) []Entry {
	entries := make([]Entry, 0, len(media)+len(articles)+len(projects))

	var run []*model.Media
	flush := func() {
		if len(run) == 0 {
			return
		}
		entries = append(entries, Entry{
			Kind:      KindPhotos,
			Timestamp: run[0].CreatedAt,
			Photos:    run,
		})
		run = nil
	}

	for _, m := range media {
		switch m.Type {
		case consts.MediaTypeImage:
			run = append(run, m)
		case consts.MediaTypeText:
			flush()
			entries = append(entries, Entry{
				Kind:      KindText,
				Timestamp: m.CreatedAt,
				Text:      m,
				Content:   textContents[m.ID],
			})
		default:
			flush()
		}
	}
	flush()

	for _, a := range articles {
		entries = append(entries, Entry{
			Kind:      KindArticle,
			Timestamp: a.Timestamp(),
			Article:   a,
		})
	}
	for _, p := range projects {
		entries = append(entries, Entry{
			Kind:      KindProject,
			Timestamp: p.Timestamp(),
			Project:   p,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

// InsertPromo 在排序后的时间流中插入推广卡片，位置超出长度时追加到末尾
func InsertPromo(entries []Entry, promo *Promo, position int) []Entry {
	if promo == nil {
		return entries
	}
	if position < 0 {
		position = 0
	}
	if position > len(entries) {
		position = len(entries)
	}

	ts := time.Time{}
	if position > 0 {
		ts = entries[position-1].Timestamp
	}

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries[:position]...)
	out = append(out, Entry{Kind: KindPromo, Timestamp: ts, Promo: promo})
	return append(out, entries[position:]...)
}
