package handler

import (
	"Folio/internal/api/dto"
	"Folio/internal/pkg/response"
	"Folio/internal/pkg/util"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc service.SearchService
}

func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchSvc: searchSvc,
	}
}

func (s *SearchHandler) Search(c *gin.Context) {
	var searchDTO dto.SearchDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&searchDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	result, err := s.searchSvc.Search(c.Request.Context(), &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Reindex 全量重建检索索引
func (s *SearchHandler) Reindex(c *gin.Context) {
	n, err := s.searchSvc.Reindex(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int{"indexed": n})
}
