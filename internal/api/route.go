package api

import (
	"net/http"

	"Folio/internal/api/middleware"
	"Folio/internal/pkg/logger"
	"Folio/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, authSvc service.AuthService) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	r.MaxMultipartMemory = 32 << 20

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	authMiddleware := middleware.AuthMiddleware(authSvc)
	adminMiddleware := middleware.AdminOnly(authSvc)
	authOptMiddleware := middleware.AuthOptionalMiddleware(authSvc)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"code":    200,
				"message": "pong",
			})
		})

		apiGroup.GET("/stream", group.StreamHandler.GetStream)
		apiGroup.GET("/search", group.SearchHandler.Search)

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", group.AuthHandler.Login)

			loginGroup := authGroup.Group("")
			loginGroup.Use(authMiddleware)
			{
				loginGroup.POST("/logout", group.AuthHandler.Logout)
				loginGroup.GET("/me", group.AuthHandler.Me)
			}
		}

		moduleGroup := apiGroup.Group("/modules")
		{
			moduleGroup.GET("", authOptMiddleware, group.ModuleHandler.ListModules)

			loginGroup := moduleGroup.Group("")
			loginGroup.Use(authMiddleware)
			{
				loginGroup.POST("/reorder", group.ModuleHandler.Reorder)
			}

			adminGroup := loginGroup.Group("")
			adminGroup.Use(adminMiddleware)
			{
				adminGroup.POST("", group.ModuleHandler.CreateModule)
				adminGroup.PUT("/:id", group.ModuleHandler.UpdateModule)
				adminGroup.DELETE("/:id", group.ModuleHandler.DeleteModule)
			}
		}

		// 媒体管理全部需要管理员
		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(authMiddleware, adminMiddleware)
		{
			mediaGroup.GET("", group.MediaHandler.ListMedia)
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.POST("/text", group.MediaHandler.CreateText)
			mediaGroup.PUT("/:id", group.MediaHandler.UpdateMedia)
			mediaGroup.DELETE("/:id", group.MediaHandler.DeleteMedia)
			mediaGroup.POST("/reorder", group.MediaHandler.Reorder)
			mediaGroup.POST("/reorder/move", group.MediaHandler.Move)
			mediaGroup.POST("/batch", group.MediaHandler.Batch)
		}

		for _, kind := range group.ContentHandler.Kinds() {
			kindGroup := apiGroup.Group("/"+kind, group.ContentHandler.WithKind(kind))
			{
				publicGroup := kindGroup.Group("")
				publicGroup.Use(authOptMiddleware)
				{
					publicGroup.GET("", group.ContentHandler.ListContents)
					publicGroup.GET("/:slug", group.ContentHandler.GetContent)
				}

				adminGroup := kindGroup.Group("")
				adminGroup.Use(authMiddleware, adminMiddleware)
				{
					adminGroup.POST("", group.ContentHandler.CreateContent)
					adminGroup.PUT("/:id", group.ContentHandler.UpdateContent)
					adminGroup.DELETE("/:id", group.ContentHandler.DeleteContent)
				}
			}
		}

		contentGroup := apiGroup.Group("/content")
		contentGroup.Use(authMiddleware)
		{
			contentGroup.POST("/:kind/batch", group.ContentHandler.Batch)
		}

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(authMiddleware, adminMiddleware)
		{
			adminGroup.GET("/activity", group.ActivityHandler.ListActivities)
			adminGroup.POST("/search/reindex", group.SearchHandler.Reindex)
		}
	}

	return r
}
