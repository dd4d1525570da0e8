package util

import (
	"bytes"
	"io"
	"strings"

	"Folio/internal/pkg/consts"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// SniffContentType 按文件头识别类型，并映射到媒体类型，不支持时 mediaType 为空
func SniffContentType(head []byte) (contentType string, mediaType string) {
	mt := mimetype.Detect(head)
	contentType = mt.String()
	base := strings.SplitN(contentType, ";", 2)[0]
	switch {
	case strings.HasPrefix(base, consts.MimePrefixImage):
		mediaType = consts.MediaTypeImage
	case strings.HasPrefix(base, consts.MimePrefixVideo):
		mediaType = consts.MediaTypeVideo
	case base == consts.MimePDF:
		mediaType = consts.MediaTypePDF
	case strings.HasPrefix(base, consts.MimePrefixText):
		mediaType = consts.MediaTypeText
	}
	return contentType, mediaType
}

// ImageDimensions 读取图片宽高，失败时返回 0
func ImageDimensions(data []byte) (width, height int) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// ReadAllLimit 读取至多 limit 字节，超出时返回 ErrTooLarge
func ReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
