package handler

import (
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/pkg/serverutils"
	internalWS "erp-agent-nexus/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// PushHandler upgrades authenticated requests to the per-user push channel.
type PushHandler struct {
	hub    *internalWS.Hub
	secret string
	logger logger.ILogger
}

func NewPushHandler(hub *internalWS.Hub, secret string, log logger.ILogger) *PushHandler {
	return &PushHandler{
		hub:    hub,
		secret: secret,
		logger: log,
	}
}

// ServeWs accepts the token as a query param (browsers cannot set headers on
// a websocket handshake) or as a bearer header.
func (h *PushHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = serverutils.BearerToken(c)
	}
	if tokenStr == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing token (query 'token' or Authorization header)")
	}

	claims, err := serverutils.ParseToken(h.secret, tokenStr)
	if err != nil {
		h.logger.Warn("PushHandler", "Invalid token in websocket handshake", map[string]interface{}{"error": err.Error()})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userKey := claims.UserId
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("PushHandler", "Websocket session started", map[string]interface{}{"user": userKey})
		internalWS.ServeWs(h.hub, conn, userKey)
		h.logger.Info("PushHandler", "Websocket session ended", map[string]interface{}{"user": userKey})
	})(c)
}

func (h *PushHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
