package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tableside/internal/models"
	"tableside/internal/store"
	"tableside/internal/views"
	"tableside/pkg"
)

// OrderService is the only code path allowed to touch the order store. All
// three surfaces (REST adapters, /mcp/call, the assistant loop) resolve to
// these five operations, so mutation semantics cannot diverge.
type OrderService interface {
	Create(ctx context.Context, tableID int64, items []string) (models.Order, error)
	Modify(ctx context.Context, orderID int64, addItems, removeItems []string, notes string) (models.Order, error)
	Cancel(ctx context.Context, orderID int64) (views.CancelResult, error)
	SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) (models.Order, error)
	List(ctx context.Context) []models.Order
}

type OrderServiceImpl struct {
	logger      *zap.Logger
	store       *store.Store
	broadcaster OrdersBroadcaster
}

func NewOrderService(logger *zap.Logger, st *store.Store, broadcaster OrdersBroadcaster) OrderService {
	return &OrderServiceImpl{
		logger:      logger,
		store:       st,
		broadcaster: broadcaster,
	}
}

func (s *OrderServiceImpl) Create(ctx context.Context, tableID int64, items []string) (models.Order, error) {
	if tableID == 0 || len(items) == 0 {
		return models.Order{}, pkg.NewAppError(pkg.ErrValidationCode, "table_id and items[] are required", nil)
	}
	order := s.store.Insert(models.Order{
		TableID:   tableID,
		Items:     append([]string(nil), items...),
		Status:    models.OrderStatusQueued,
		CreatedAt: time.Now().UTC(),
	})
	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("table_id", tableID),
		zap.Int("items", len(items)),
	)
	s.broadcast()
	return order, nil
}

func (s *OrderServiceImpl) Modify(ctx context.Context, orderID int64, addItems, removeItems []string, notes string) (models.Order, error) {
	order, ok := s.store.Update(orderID, func(o *models.Order) {
		// Removal is by value, not position: every occurrence of a matching
		// name is dropped, including occurrences added in this same call.
		merged := append(append([]string(nil), o.Items...), addItems...)
		kept := merged[:0]
		for _, item := range merged {
			if !contains(removeItems, item) {
				kept = append(kept, item)
			}
		}
		o.Items = kept
		if notes != "" {
			o.Notes = notes
		}
		stamp(o)
	})
	if !ok {
		return models.Order{}, pkg.NewAppError(pkg.ErrOrderNotFoundCode, "Order not found", nil)
	}
	s.logger.Info("order modified",
		zap.Int64("order_id", orderID),
		zap.Int("added", len(addItems)),
		zap.Int("removed", len(removeItems)),
	)
	s.broadcast()
	return order, nil
}

func (s *OrderServiceImpl) Cancel(ctx context.Context, orderID int64) (views.CancelResult, error) {
	removed, ok := s.store.Remove(orderID)
	if !ok {
		return views.CancelResult{}, pkg.NewAppError(pkg.ErrOrderNotFoundCode, "Order not found", nil)
	}
	s.logger.Info("order cancelled", zap.Int64("order_id", orderID))
	s.broadcast()
	return views.CancelResult{Cancelled: true, Order: removed}, nil
}

func (s *OrderServiceImpl) SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, pkg.NewAppError(pkg.ErrValidationCode, "Invalid status", nil)
	}
	order, ok := s.store.Update(orderID, func(o *models.Order) {
		o.Status = status
		stamp(o)
	})
	if !ok {
		return models.Order{}, pkg.NewAppError(pkg.ErrOrderNotFoundCode, "Order not found", nil)
	}
	s.logger.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)
	s.broadcast()
	return order, nil
}

func (s *OrderServiceImpl) List(ctx context.Context) []models.Order {
	return s.store.Snapshot()
}

// broadcast pushes the full current collection after every successful
// mutation. Always the complete snapshot, never a delta, so subscribers
// treat each message as authoritative replacement state.
func (s *OrderServiceImpl) broadcast() {
	s.broadcaster.PublishOrders(s.store.Snapshot())
}

func stamp(o *models.Order) {
	now := time.Now().UTC()
	o.UpdatedAt = &now
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
