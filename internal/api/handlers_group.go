package api

import "Folio/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler     *handler.AuthHandler
	StreamHandler   *handler.StreamHandler
	MediaHandler    *handler.MediaHandler
	ModuleHandler   *handler.ModuleHandler
	ContentHandler  *handler.ContentHandler
	SearchHandler   *handler.SearchHandler
	ActivityHandler *handler.ActivityHandler
}
