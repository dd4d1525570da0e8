package middleware

import (
	"Folio/internal/pkg/logger"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失则 user_id 为 0
func AuthOptionalMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxUserID, uint64(0))

		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := authSvc.Authenticate(c.Request.Context(), tokenString)
		if err == nil {
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Request = c.Request.WithContext(logger.WithUserEmail(c.Request.Context(), claims.Email))
		}

		c.Next()
	}
}

// IsAdmin 当前请求是否来自管理员，需在鉴权中间件之后调用
func IsAdmin(c *gin.Context, authSvc service.AuthService) bool {
	email := c.GetString(CtxEmail)
	return email != "" && authSvc.IsAdmin(email)
}
