package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUnauthorized        = errors.New("未登录或权限不足")
	ErrPasswordIncorrect   = errors.New("邮箱或密码错误")
	ErrUserExist           = errors.New("用户已存在")
	ErrUnknownAction       = errors.New("未知的批量操作")
	ErrActionUnsupported   = errors.New("该内容类型不支持此操作")
	ErrTargetRequired      = errors.New("缺少操作目标")
	ErrClassificationBad   = errors.New("无效的可见性分类")
	ErrReorderScope        = errors.New("聚合视图或搜索结果不支持排序")
	ErrReorderDuplicate    = errors.New("排序列表包含重复记录")
	ErrBucketNotAllowed    = errors.New("目标存储桶不存在")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrFileTooLarge        = errors.New("文件过大")
	ErrMediaNotFound       = errors.New("媒体不存在")
	ErrModuleNotFound      = errors.New("模块不存在")
	ErrModuleSlugExist     = errors.New("模块标识已存在")
	ErrContentNotFound     = errors.New("内容不存在")
	ErrContentSlugExist    = errors.New("内容标识已存在")
	ErrContentKindNotFound = errors.New("未知的内容类型")
	ErrPositionOutOfRange  = errors.New("排序位置超出范围")
	ErrSearchUnavailable   = errors.New("搜索服务不可用")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUnauthorized:        Unauthorized,
	ErrPasswordIncorrect:   Unauthorized,
	ErrUserExist:           BadRequest,
	ErrUnknownAction:       BadRequest,
	ErrActionUnsupported:   BadRequest,
	ErrTargetRequired:      BadRequest,
	ErrClassificationBad:   BadRequest,
	ErrReorderScope:        BadRequest,
	ErrReorderDuplicate:    BadRequest,
	ErrBucketNotAllowed:    BadRequest,
	ErrFileNotSupported:    BadRequest,
	ErrFileTooLarge:        BadRequest,
	ErrMediaNotFound:       NotFound,
	ErrModuleNotFound:      NotFound,
	ErrModuleSlugExist:     BadRequest,
	ErrContentNotFound:     NotFound,
	ErrContentSlugExist:    BadRequest,
	ErrContentKindNotFound: NotFound,
	ErrPositionOutOfRange:  BadRequest,
	ErrSearchUnavailable:   InternalServerError,
	UnExpectedError:        InternalServerError,
}
