package handler

import (
	"Folio/internal/api/dto"
	"Folio/internal/pkg/response"
	"Folio/internal/pkg/util"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activitySvc service.ActivityService
}

func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activitySvc: activitySvc,
	}
}

func (s *ActivityHandler) ListActivities(c *gin.Context) {
	var pageDTO dto.PageDTO
	if err := c.ShouldBindQuery(&pageDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&pageDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := s.activitySvc.ListActivities(c.Request.Context(), &pageDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
