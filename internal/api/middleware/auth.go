package middleware

import (
	"errors"
	"strings"

	"Folio/internal/pkg/logger"
	"Folio/internal/pkg/response"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxToken  = "token"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		claims, err := authSvc.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxToken, tokenString)
		c.Request = c.Request.WithContext(logger.WithUserEmail(c.Request.Context(), claims.Email))

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
