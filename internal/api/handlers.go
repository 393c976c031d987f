// Package api exposes the assistant over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/analytics"
	"github.com/eshaffer321/bank-assistant-go/internal/assistant"
	"github.com/eshaffer321/bank-assistant-go/internal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ServiceName = "ai-assistant"

// Handler serves the assistant routes
type Handler struct {
	assistant *assistant.Assistant
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler creates a handler
func NewHandler(a *assistant.Assistant, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		assistant: a,
		logger:    logger,
		now:       time.Now,
	}
}

// ChatRequest is the body of POST /chat and of each /ws/chat frame
type ChatRequest struct {
	Username string `json:"username" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// ChatResponse is the reply to a chat message
type ChatResponse struct {
	Username    string `json:"username"`
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
	Timestamp   string `json:"timestamp"`
}

// SpendingResponse is the body of GET /spending-analysis/:username
type SpendingResponse struct {
	Username  string                      `json:"username"`
	Analysis  *analytics.SpendingAnalysis `json:"analysis"`
	Timestamp string                      `json:"timestamp"`
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
}

// Ready reports readiness and whether the model is configured
func (h *Handler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "ready",
		"service":          ServiceName,
		"model_configured": h.assistant.ModelConfigured(),
	})
}

// Insights returns the AI report for a user. The bearer token is optional.
func (h *Handler) Insights(c *gin.Context) {
	username := c.Param("username")
	token := auth.BearerToken(c.GetHeader("Authorization"))

	data := h.assistant.UserData(c.Request.Context(), username, token)
	report := h.assistant.Insights(c.Request.Context(), data)

	c.JSON(http.StatusOK, report)
}

// Chat answers one message
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, ParseValidationErrors(err))
		return
	}

	token := auth.BearerToken(c.GetHeader("Authorization"))
	c.JSON(http.StatusOK, h.chat(c, req, token))
}

// SpendingAnalysis breaks down a user's spending. A bearer token is required.
func (h *Handler) SpendingAnalysis(c *gin.Context) {
	token := auth.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		abort(c, ErrUnauthorized)
		return
	}

	username := c.Param("username")
	analysis := h.assistant.SpendingAnalysis(c.Request.Context(), username, token)

	c.JSON(http.StatusOK, SpendingResponse{
		Username:  username,
		Analysis:  analysis,
		Timestamp: h.timestamp(),
	})
}

func (h *Handler) chat(c *gin.Context, req ChatRequest, token string) ChatResponse {
	ctx := c.Request.Context()
	data := h.assistant.UserData(ctx, req.Username, token)

	return ChatResponse{
		Username:    req.Username,
		UserMessage: req.Message,
		AIResponse:  h.assistant.Chat(ctx, req.Message, data),
		Timestamp:   h.timestamp(),
	}
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
