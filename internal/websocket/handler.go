package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/security"
)

// Handler upgrades HTTP requests to websocket connections.
type Handler struct {
	hub         *Hub
	upgrader    websocket.Upgrader
	jwtProvider *security.JWTProvider
	logger      *zap.Logger
}

// NewHandler creates a websocket handler.
func NewHandler(hub *Hub, jwtProvider *security.JWTProvider, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:         hub,
		jwtProvider: jwtProvider,
		logger:      logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
		CheckOrigin:      func(*http.Request) bool { return true },
	}
	return h
}

// RegisterRoutes registers the websocket endpoints.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ws", h.handleUpgrade)
	router.GET("/ws/status", h.handleStatus)
}

// handleUpgrade authenticates via the token query param or Authorization
// header, then hands the connection to the hub. Anonymous connections are
// allowed and only receive global broadcasts.
func (h *Handler) handleUpgrade(c *gin.Context) {
	var userID string
	var isAdmin bool

	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
		}
	}
	if token != "" {
		if claims, err := h.jwtProvider.ValidateAccessToken(token); err == nil {
			userID = claims.UserID
			isAdmin = claims.Role == entity.RoleAdmin || claims.Role == entity.RoleSuperAdmin
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, userID, isAdmin, h.logger)
	h.hub.register <- client

	client.Send(&Message{
		Type:      MessageTypeEvent,
		Data:      gin.H{"event": "connected", "client_id": client.ID},
		Timestamp: time.Now(),
	})

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active_connections": h.hub.ClientCount(),
	})
}
