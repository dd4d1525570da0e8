package handler

import (
	"Folio/internal/api/dto"
	"Folio/internal/pkg/response"
	"Folio/internal/pkg/util"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > service.MaxUploadSize {
		response.Error(c, service.ErrFileTooLarge)
		return
	}

	var uploadDTO dto.MediaUploadDTO
	if err = c.ShouldBind(&uploadDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&uploadDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	media, err := s.mediaSvc.Upload(c.Request.Context(), &service.UploadFile{
		Name:   file.Filename,
		Size:   file.Size,
		Reader: reader,
	}, &uploadDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) CreateText(c *gin.Context) {
	var textDTO dto.CreateTextDTO
	if err := c.ShouldBindJSON(&textDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&textDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	media, err := s.mediaSvc.CreateText(c.Request.Context(), &textDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) ListMedia(c *gin.Context) {
	var queryDTO dto.MediaQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&queryDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := s.mediaSvc.ListMedia(c.Request.Context(), &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *MediaHandler) UpdateMedia(c *gin.Context) {
	var updateDTO dto.UpdateMediaDTO
	if err := c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	media, err := s.mediaSvc.UpdateMedia(c.Request.Context(), c.Param("id"), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) DeleteMedia(c *gin.Context) {
	n, err := s.mediaSvc.DeleteMedia(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if n == 0 {
		response.Error(c, service.ErrMediaNotFound)
		return
	}
	response.Success(c, dto.DeletedResult(n))
}

// Reorder 写回当前分类视图下的顺序
func (s *MediaHandler) Reorder(c *gin.Context) {
	var reorderDTO dto.ReorderDTO
	if err := c.ShouldBindJSON(&reorderDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&reorderDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	if err := s.mediaSvc.Reorder(c.Request.Context(), &reorderDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MediaHandler) Move(c *gin.Context) {
	var moveDTO dto.MoveDTO
	if err := c.ShouldBindJSON(&moveDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&moveDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	positions, err := s.mediaSvc.Move(c.Request.Context(), &moveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, positions)
}

func (s *MediaHandler) Batch(c *gin.Context) {
	var batchDTO dto.BatchDTO
	if err := c.ShouldBindJSON(&batchDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&batchDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := s.mediaSvc.Batch(c.Request.Context(), &batchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
