package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableside/internal/services"
	"tableside/internal/ws"
)

type WSHandler struct {
	logger *zap.Logger
	hub    *ws.Hub
	orders services.OrderService
}

func NewWSHandler(logger *zap.Logger, hub *ws.Hub, orders services.OrderService) *WSHandler {
	return &WSHandler{logger: logger, hub: hub, orders: orders}
}

func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.Subscribe)
}

func (h *WSHandler) Subscribe(c *gin.Context) {
	snapshot := h.orders.List(c.Request.Context())
	if err := h.hub.Serve(c.Writer, c.Request, snapshot); err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
	}
}
