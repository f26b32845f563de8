package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tableside/internal/views"
)

func TestListTools_EnumeratesRegistry(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/mcp/tools", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode[views.ToolListResponse](t, w)
	names := make([]string, 0, len(body.Tools))
	for _, spec := range body.Tools {
		names = append(names, spec.Name)
		assert.NotEmpty(t, spec.Description)
	}
	assert.Equal(t, []string{
		"search_menu",
		"create_orders",
		"modify_orders",
		"cancel_orders",
		"update_order_status",
	}, names)
}

func TestCallTool_UnknownNameIs404(t *testing.T) {
	r, orders := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/mcp/call", gin.H{"name": "nonexistent", "args": gin.H{}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decode[views.ToolCallResponse](t, w)
	assert.False(t, body.OK)
	assert.Contains(t, body.Error, "nonexistent")

	// The store is untouched by failed dispatch.
	assert.Empty(t, orders.List(context.Background()))
}

func TestCallTool_Create(t *testing.T) {
	r, orders := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/mcp/call", gin.H{
		"name": "create_orders",
		"args": gin.H{"table_id": 4, "items": []string{"Margherita Pizza"}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decode[views.ToolCallResponse](t, w)
	assert.True(t, body.OK)
	assert.NotNil(t, body.Result)
	assert.Len(t, orders.List(context.Background()), 1)
}

func TestCallTool_ValidationFailureIs400(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/mcp/call", gin.H{
		"name": "create_orders",
		"args": gin.H{"table_id": 4, "items": []string{}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[views.ToolCallResponse](t, w)
	assert.False(t, body.OK)
	assert.NotEmpty(t, body.Error)
}

func TestCallTool_SearchMenu(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/mcp/call", gin.H{
		"name": "search_menu",
		"args": gin.H{"query": "lemon"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[views.ToolCallResponse](t, w).OK)
}
