package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with middleware and routes
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		RequestID(),
		SentryHub(),
		AccessLog(logger),
		Recovery(logger),
		CORS(),
	)

	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/insights/:username", h.Insights)
	router.POST("/chat", h.Chat)
	router.GET("/spending-analysis/:username", h.SpendingAnalysis)
	router.GET("/ws/chat", h.ChatSocket)

	return router
}
