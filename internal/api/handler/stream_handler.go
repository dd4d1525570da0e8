package handler

import (
	"Folio/internal/api/dto"
	"Folio/internal/pkg/response"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	streamSvc service.StreamService
}

func NewStreamHandler(streamSvc service.StreamService) *StreamHandler {
	return &StreamHandler{
		streamSvc: streamSvc,
	}
}

func (s *StreamHandler) GetStream(c *gin.Context) {
	var queryDTO dto.StreamQueryDTO
	if err := c.ShouldBindQuery(&queryDTO); err != nil {
		response.Error(c, err)
		return
	}

	entries, err := s.streamSvc.GetStream(c.Request.Context(), &queryDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}
