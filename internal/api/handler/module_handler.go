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

type ModuleHandler struct {
	moduleSvc service.ModuleService
	authSvc   service.AuthService
}

func NewModuleHandler(moduleSvc service.ModuleService, authSvc service.AuthService) *ModuleHandler {
	return &ModuleHandler{
		moduleSvc: moduleSvc,
		authSvc:   authSvc,
	}
}

// ListModules 访客只能看到启用的模块
func (s *ModuleHandler) ListModules(c *gin.Context) {
	modules, err := s.moduleSvc.ListModules(c.Request.Context(), middleware.IsAdmin(c, s.authSvc))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, modules)
}

func (s *ModuleHandler) CreateModule(c *gin.Context) {
	var createDTO dto.CreateModuleDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	module, err := s.moduleSvc.CreateModule(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, module)
}

func (s *ModuleHandler) UpdateModule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var updateDTO dto.UpdateModuleDTO
	if err = c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	module, err := s.moduleSvc.UpdateModule(c.Request.Context(), id, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, module)
}

func (s *ModuleHandler) DeleteModule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.moduleSvc.DeleteModule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ModuleHandler) Reorder(c *gin.Context) {
	var reorderDTO dto.ReorderDTO
	if err := c.ShouldBindJSON(&reorderDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&reorderDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	if err := s.moduleSvc.Reorder(c.Request.Context(), &reorderDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
