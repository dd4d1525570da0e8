package middleware

import (
	"Folio/internal/pkg/response"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOnly 当前用户必须在管理员名单中，需挂在 AuthMiddleware 之后
func AdminOnly(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c, authSvc) {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}
