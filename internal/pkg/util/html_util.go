package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Excerpt 从 HTML 正文提取纯文本摘要
func Excerpt(body string, n int) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return Truncate(body, n)
	}
	doc.Find("script, style").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")
	return Truncate(text, n)
}

// FirstImage 正文中第一张图片地址，用作缺省封面
func FirstImage(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
