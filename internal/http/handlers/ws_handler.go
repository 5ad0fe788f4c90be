package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/complaints-dashboard/internal/http/handlers/common"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/logger"
	"github.com/ignatzorin/complaints-dashboard/internal/ws"
)

// WSHandler открывает ленту событий. Маршрут стоит за AuthMiddleware и AdminGuard.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler allowedOrigins тот же список, что и для CORS.
func NewWSHandler(hub *ws.Hub, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Handle обслуживает GET /api/admin/ws?access_token=...
func (h *WSHandler) Handle(c *gin.Context) {
	profileID, err := common.CurrentUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("ws: upgrade не удался")
		return
	}

	client := ws.NewClient(conn, h.hub, profileID)
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}

	client.Run(c.Request.Context())
}
