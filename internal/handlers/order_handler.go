package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableside/internal/models"
	"tableside/internal/services"
	"tableside/internal/views"
)

// OrderHandler exposes the menu catalog and the five order operations over
// REST. These are thin adapters: all semantics live in the order service.
type OrderHandler struct {
	logger *zap.Logger
	orders services.OrderService
	menu   services.MenuService
}

func NewOrderHandler(logger *zap.Logger, orders services.OrderService, menu services.MenuService) *OrderHandler {
	return &OrderHandler{logger: logger, orders: orders, menu: menu}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/menu", h.GetMenu)
	r.GET("/orders", h.ListOrders)
	r.POST("/orders", h.CreateOrder)
	r.PUT("/orders/:id", h.ModifyOrder)
	r.DELETE("/orders/:id", h.CancelOrder)
	r.POST("/orders/:id/status", h.UpdateOrderStatus)
}

func (h *OrderHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, h.menu.All())
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.orders.List(c.Request.Context()))
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req views.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	order, err := h.orders.Create(c.Request.Context(), req.TableID, req.Items)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ModifyOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req views.ModifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	order, err := h.orders.Modify(c.Request.Context(), id, req.AddItems, req.RemoveItems, req.Notes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	result, err := h.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req views.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	order, err := h.orders.SetStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return id, true
}
