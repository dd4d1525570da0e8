package handler

import (
	"strconv"

	"Folio/internal/api/dto"
	"Folio/internal/api/middleware"
	"Folio/internal/pkg/response"
	"Folio/internal/pkg/util"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

const ctxContentKind = "content_kind"

// ContentHandler 文章、项目、博客共用，按路由上的 kind 选择服务
type ContentHandler struct {
	services map[string]service.ContentService
	authSvc  service.AuthService
}

func NewContentHandler(authSvc service.AuthService, services ...service.ContentService) *ContentHandler {
	m := make(map[string]service.ContentService, len(services))
	for _, svc := range services {
		m[svc.Kind()] = svc
	}
	return &ContentHandler{
		services: m,
		authSvc:  authSvc,
	}
}

// Kinds 已注册的内容类型
func (s *ContentHandler) Kinds() []string {
	kinds := make([]string, 0, len(s.services))
	for kind := range s.services {
		kinds = append(kinds, kind)
	}
	return kinds
}

// WithKind 为固定前缀的路由组标记内容类型
func (s *ContentHandler) WithKind(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxContentKind, kind)
		c.Next()
	}
}

func (s *ContentHandler) resolve(c *gin.Context) (service.ContentService, bool) {
	kind := c.Param("kind")
	if kind == "" {
		kind = c.GetString(ctxContentKind)
	}
	svc, ok := s.services[kind]
	if !ok {
		response.Error(c, service.ErrContentKindNotFound)
	}
	return svc, ok
}

func (s *ContentHandler) ListContents(c *gin.Context) {
	svc, ok := s.resolve(c)
	if !ok {
		return
	}

	var pageDTO dto.PageDTO
	if err := c.ShouldBindQuery(&pageDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&pageDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := svc.ListContents(c.Request.Context(), !middleware.IsAdmin(c, s.authSvc), &pageDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ContentHandler) GetContent(c *gin.Context) {
	svc, ok := s.resolve(c)
	if !ok {
		return
	}

	content, err := svc.GetContent(c.Request.Context(), c.Param("slug"), !middleware.IsAdmin(c, s.authSvc))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

func (s *ContentHandler) CreateContent(c *gin.Context) {
	svc, ok := s.resolve(c)
	if !ok {
		return
	}

	var saveDTO dto.SaveContentDTO
	if err := c.ShouldBindJSON(&saveDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&saveDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	content, err := svc.CreateContent(c.Request.Context(), &saveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

func (s *ContentHandler) UpdateContent(c *gin.Context) {
	svc, ok := s.resolve(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var saveDTO dto.SaveContentDTO
	if err = c.ShouldBindJSON(&saveDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&saveDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	content, err := svc.UpdateContent(c.Request.Context(), id, &saveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, content)
}

func (s *ContentHandler) DeleteContent(c *gin.Context) {
	svc, ok := s.resolve(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = svc.DeleteContent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContentHandler) Batch(c *gin.Context) {
	svc, ok := s.resolve(c)
	if !ok {
		return
	}

	var batchDTO dto.BatchDTO
	if err := c.ShouldBindJSON(&batchDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&batchDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := svc.Batch(c.Request.Context(), &batchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
