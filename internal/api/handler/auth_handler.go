package handler

import (
	"Folio/internal/api/dto"
	"Folio/internal/api/middleware"
	"Folio/internal/pkg/response"
	"Folio/internal/pkg/util"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
	}
}

func (s *AuthHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if err := c.ShouldBindJSON(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&loginDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	token, err := s.authSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

func (s *AuthHandler) Logout(c *gin.Context) {
	if err := s.authSvc.Logout(c.Request.Context(), c.GetString(middleware.CtxToken)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AuthHandler) Me(c *gin.Context) {
	user, err := s.authSvc.Me(c.Request.Context(), c.GetUint64(middleware.CtxUserID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
