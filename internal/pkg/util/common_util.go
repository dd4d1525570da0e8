package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var slugSeparator = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify 由标题生成 url 片段，无法生成时退化为随机串
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugSeparator.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len([]rune(s)) > 80 {
		s = strings.TrimRight(string([]rune(s)[:80]), "-")
	}
	if s == "" {
		return uuid.NewString()[:8]
	}
	return s
}

// NormalizeTags 去除空白与重复标签，保持原有顺序
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimFunc(t, unicode.IsSpace)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Truncate 按字符截断
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
