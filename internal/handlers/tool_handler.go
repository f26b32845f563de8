package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tableside/internal/tools"
	"tableside/internal/views"
	"tableside/pkg"
)

// ToolHandler is the generic tool-invocation surface: it enumerates the
// registry and dispatches {name, args} calls directly, returning failures
// as structured payloads instead of HTTP-only errors.
type ToolHandler struct {
	logger   *zap.Logger
	registry *tools.Registry
}

func NewToolHandler(logger *zap.Logger, registry *tools.Registry) *ToolHandler {
	return &ToolHandler{logger: logger, registry: registry}
}

func (h *ToolHandler) RegisterRoutes(r *gin.Engine) {
	mcp := r.Group("/mcp")
	mcp.GET("/tools", h.ListTools)
	mcp.POST("/call", h.CallTool)
}

func (h *ToolHandler) ListTools(c *gin.Context) {
	list := h.registry.List()
	specs := make([]views.ToolSpec, 0, len(list))
	for _, t := range list {
		specs = append(specs, views.ToolSpec{Name: t.Name, Description: t.Description})
	}
	c.JSON(http.StatusOK, views.ToolListResponse{Tools: specs})
}

func (h *ToolHandler) CallTool(c *gin.Context) {
	var req views.ToolCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, views.ToolCallResponse{OK: false, Error: "invalid request body"})
		return
	}
	result, err := h.registry.Call(c.Request.Context(), req.Name, tools.Args(req.Args))
	if err != nil {
		status := http.StatusBadRequest
		var appErr pkg.AppError
		if errors.As(err, &appErr) {
			status = appErr.Code.Status
		}
		h.logger.Warn("tool call rejected",
			zap.String("tool", req.Name),
			zap.Error(err),
		)
		c.JSON(status, views.ToolCallResponse{OK: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, views.ToolCallResponse{OK: true, Result: result})
}
