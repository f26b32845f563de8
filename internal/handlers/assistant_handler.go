package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableside/internal/services"
	"tableside/internal/views"
	"tableside/pkg"
	"tableside/pkg/utils"
)

type AssistantHandler struct {
	logger    *zap.Logger
	assistant services.AssistantService
}

func NewAssistantHandler(logger *zap.Logger, assistant services.AssistantService) *AssistantHandler {
	return &AssistantHandler{logger: logger, assistant: assistant}
}

func (h *AssistantHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/assistant", h.Chat)
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	traceID, _ := utils.GetTraceID(c)

	var req views.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), traceID, req)
	if err != nil {
		h.logger.Error("assistant request failed",
			zap.String(pkg.TraceId, traceID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Assistant error",
			"detail": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, views.AssistantReply{Reply: reply})
}
