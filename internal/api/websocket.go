package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eshaffer321/bank-assistant-go/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const socketReadTimeout = 5 * time.Minute

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// socketError is sent when a frame cannot be answered
type socketError struct {
	Error string `json:"error"`
}

// ChatSocket answers chat frames over a websocket. Frames are independent; the
// connection carries no conversation state.
func (h *Handler) ChatSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	token := auth.BearerToken(c.GetHeader("Authorization"))
	h.logger.Info("WebSocket connection established",
		zap.String("remote_addr", c.Request.RemoteAddr),
		zap.String("request_id", c.GetString(requestIDKey)),
	)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(socketReadTimeout)); err != nil {
			h.logger.Warn("Error setting read deadline", zap.Error(err))
			return
		}

		var req ChatRequest
		err := conn.ReadJSON(&req)
		if err != nil && !isMalformedFrame(err) {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket error", zap.Error(err))
			}
			return
		}

		var reply interface{}
		if err != nil {
			h.logger.Debug("Malformed chat frame", zap.Error(err))
			reply = socketError{Error: "Invalid message format"}
		} else if req.Username == "" || req.Message == "" {
			reply = socketError{Error: "Message and username required"}
		} else {
			reply = h.chat(c, req, token)
		}

		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("Error writing message", zap.Error(err))
			return
		}
	}
}

// isMalformedFrame reports whether a read failed on the frame's content rather than the connection
func isMalformedFrame(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
