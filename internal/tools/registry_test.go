package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tableside/internal/models"
	"tableside/internal/services"
	"tableside/internal/store"
	"tableside/internal/tools"
	"tableside/internal/views"
	"tableside/pkg"
)

func newRegistry(t *testing.T) (*tools.Registry, services.OrderService) {
	t.Helper()
	orders := services.NewOrderService(zap.NewNop(), store.New(), services.NopBroadcaster{})
	menu := services.NewMenuService(zap.NewNop(), []models.MenuItem{
		{ID: 1, Name: "Margherita Pizza", Ingredients: []string{"tomato", "mozzarella"}, Price: 11.5},
	})
	return tools.NewRegistry(orders, menu), orders
}

func TestList_FixedTableInDeclarationOrder(t *testing.T) {
	registry, _ := newRegistry(t)

	names := make([]string, 0)
	for _, tool := range registry.List() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.Parameters)
	}
	assert.Equal(t, []string{
		"search_menu",
		"create_orders",
		"modify_orders",
		"cancel_orders",
		"update_order_status",
	}, names)
}

func TestCall_UnknownTool(t *testing.T) {
	registry, orders := newRegistry(t)

	_, err := registry.Call(context.Background(), "drop_tables", tools.Args{})
	assert.Error(t, err)

	var appErr pkg.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkg.ErrUnknownToolCode, appErr.Code)

	// Dispatch failures never touch the store.
	assert.Empty(t, orders.List(context.Background()))
}

func TestCall_CreateCoercesJSONNumbers(t *testing.T) {
	registry, _ := newRegistry(t)

	// JSON decoding produces float64 numbers and []any arrays.
	result, err := registry.Call(context.Background(), "create_orders", tools.Args{
		"table_id": float64(7),
		"items":    []any{"Margherita Pizza", "Lemon Soda"},
	})
	assert.NoError(t, err)

	order, ok := result.(models.Order)
	assert.True(t, ok)
	assert.Equal(t, int64(7), order.TableID)
	assert.Equal(t, []string{"Margherita Pizza", "Lemon Soda"}, order.Items)
	assert.Equal(t, models.OrderStatusQueued, order.Status)
}

func TestCall_StatusUpdateAndCancel(t *testing.T) {
	registry, orders := newRegistry(t)
	created, err := orders.Create(context.Background(), 2, []string{"Pizza"})
	assert.NoError(t, err)

	result, err := registry.Call(context.Background(), "update_order_status", tools.Args{
		"order_id": float64(created.ID),
		"status":   "ready",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, result.(models.Order).Status)

	result, err = registry.Call(context.Background(), "cancel_orders", tools.Args{
		"order_id": float64(created.ID),
	})
	assert.NoError(t, err)
	assert.True(t, result.(views.CancelResult).Cancelled)
	assert.Empty(t, orders.List(context.Background()))
}

func TestCall_SearchMenu(t *testing.T) {
	registry, _ := newRegistry(t)

	result, err := registry.Call(context.Background(), "search_menu", tools.Args{"query": "mozzarella"})
	assert.NoError(t, err)
	assert.Len(t, result.(views.MenuSearchResult).Results, 1)
}

func TestCall_ValidationErrorsPropagate(t *testing.T) {
	registry, _ := newRegistry(t)

	_, err := registry.Call(context.Background(), "create_orders", tools.Args{
		"table_id": float64(5),
		"items":    []any{},
	})
	assert.Error(t, err)

	var appErr pkg.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, pkg.ErrValidationCode, appErr.Code)
}
