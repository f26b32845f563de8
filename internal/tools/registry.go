// Package tools holds the capability table shared by every mutation
// surface. The set of tools is a closed, statically constructed list;
// nothing is resolved by reflection.
package tools

import (
	"context"
	"encoding/json"

	"tableside/internal/models"
	"tableside/internal/views"
	"tableside/pkg"
)

// OrderOps is the slice of the order service the tools need.
type OrderOps interface {
	Create(ctx context.Context, tableID int64, items []string) (models.Order, error)
	Modify(ctx context.Context, orderID int64, addItems, removeItems []string, notes string) (models.Order, error)
	Cancel(ctx context.Context, orderID int64) (views.CancelResult, error)
	SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) (models.Order, error)
}

type MenuSearcher interface {
	Search(query string) views.MenuSearchResult
}

// Args are JSON-decoded tool arguments (numbers arrive as float64).
type Args map[string]any

// Tool is one entry of the capability table. Parameters is the JSON-schema
// description advertised to the completion engine and /mcp/tools callers.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
	Run         func(ctx context.Context, args Args) (any, error)
}

type Registry struct {
	tools  []Tool // stable enumeration order
	byName map[string]Tool
}

// NewRegistry builds the fixed five-tool table. There is exactly one
// implementation behind each name; REST adapters, /mcp/call and the
// assistant loop all dispatch through here.
func NewRegistry(orders OrderOps, menu MenuSearcher) *Registry {
	tools := []Tool{
		{
			Name:        "search_menu",
			Description: "Search for menu items by name or ingredient",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {"query": {"type": "string"}},
				"required": ["query"]
			}`),
			Run: func(ctx context.Context, args Args) (any, error) {
				return menu.Search(args.str("query")), nil
			},
		},
		{
			Name:        "create_orders",
			Description: "Create a new order",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"table_id": {"type": "number"},
					"items": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["table_id", "items"]
			}`),
			Run: func(ctx context.Context, args Args) (any, error) {
				return orders.Create(ctx, args.num("table_id"), args.strs("items"))
			},
		},
		{
			Name:        "modify_orders",
			Description: "Modify an existing order",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"order_id": {"type": "number"},
					"add_items": {"type": "array", "items": {"type": "string"}},
					"remove_items": {"type": "array", "items": {"type": "string"}},
					"notes": {"type": "string"}
				},
				"required": ["order_id"]
			}`),
			Run: func(ctx context.Context, args Args) (any, error) {
				return orders.Modify(ctx, args.num("order_id"), args.strs("add_items"), args.strs("remove_items"), args.str("notes"))
			},
		},
		{
			Name:        "cancel_orders",
			Description: "Cancel an order",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {"order_id": {"type": "number"}},
				"required": ["order_id"]
			}`),
			Run: func(ctx context.Context, args Args) (any, error) {
				return orders.Cancel(ctx, args.num("order_id"))
			},
		},
		{
			Name:        "update_order_status",
			Description: "Update order status",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"order_id": {"type": "number"},
					"status": {
						"type": "string",
						"enum": ["queued", "in_progress", "ready", "served", "cancelled"]
					}
				},
				"required": ["order_id", "status"]
			}`),
			Run: func(ctx context.Context, args Args) (any, error) {
				return orders.SetStatus(ctx, args.num("order_id"), models.OrderStatus(args.str("status")))
			},
		},
	}

	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	return &Registry{tools: tools, byName: byName}
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Call dispatches by name. Unknown names fail with the unknown-tool code
// without touching any state.
func (r *Registry) Call(ctx context.Context, name string, args Args) (any, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, pkg.NewAppError(pkg.ErrUnknownToolCode, "No such tool: "+name, nil)
	}
	return t.Run(ctx, args)
}

// List enumerates the table in its fixed declaration order.
func (r *Registry) List() []Tool {
	return r.tools
}
