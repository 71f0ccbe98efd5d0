package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/themes", s.listThemes)
		api.GET("/themes/:id", s.getTheme)
		api.POST("/themes/:id/presets/filter", s.filterPresets)
		api.POST("/themes/:id/render", s.renderHandler)
		api.POST("/themes/:id/export", s.exportHandler)
		api.GET("/themes/:id/qr", s.qrHandler)
		api.GET("/themes/:id/live", s.liveHandler)
	}
}
