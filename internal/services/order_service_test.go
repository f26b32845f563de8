package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"tableside/internal/models"
	"tableside/internal/services"
	"tableside/internal/store"
	"tableside/pkg"
)

// captureBroadcaster records every published snapshot so tests can assert
// the one-broadcast-per-mutation contract.
type captureBroadcaster struct {
	snapshots [][]models.Order
}

func (b *captureBroadcaster) PublishOrders(orders []models.Order) {
	b.snapshots = append(b.snapshots, orders)
}

func newOrderService(t *testing.T) (services.OrderService, *captureBroadcaster) {
	t.Helper()
	b := &captureBroadcaster{}
	return services.NewOrderService(zap.NewNop(), store.New(), b), b
}

func appErrCode(t *testing.T, err error) pkg.ErrorCode {
	t.Helper()
	var appErr pkg.AppError
	assert.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestCreate_EmptyItemsRejected(t *testing.T) {
	svc, b := newOrderService(t)

	_, err := svc.Create(context.Background(), 5, nil)
	assert.Error(t, err)
	assert.Equal(t, pkg.ErrValidationCode, appErrCode(t, err))
	assert.Empty(t, b.snapshots, "failed create must not broadcast")
}

func TestCreate_MissingTableRejected(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.Create(context.Background(), 0, []string{"Pasta"})
	assert.Error(t, err)
	assert.Equal(t, pkg.ErrValidationCode, appErrCode(t, err))
}

func TestCreate_Success(t *testing.T) {
	svc, b := newOrderService(t)

	order, err := svc.Create(context.Background(), 5, []string{"Pasta"})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusQueued, order.Status)
	assert.Equal(t, int64(5), order.TableID)
	assert.Equal(t, []string{"Pasta"}, order.Items)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Nil(t, order.UpdatedAt, "updated_at absent until first mutation")
	assert.Len(t, b.snapshots, 1)
}

func TestCreate_IDsStrictlyIncreasing(t *testing.T) {
	svc, _ := newOrderService(t)

	var prev int64
	for i := 0; i < 10; i++ {
		o, err := svc.Create(context.Background(), 3, []string{"Soda"})
		assert.NoError(t, err)
		assert.Greater(t, o.ID, prev)
		prev = o.ID
	}
}

func TestModify_AddThenRemoveNetsToRemoval(t *testing.T) {
	svc, _ := newOrderService(t)
	order, err := svc.Create(context.Background(), 2, []string{"Pizza"})
	assert.NoError(t, err)

	// "Soda" was never on the order; adding and removing it in the same
	// call must net out to absence.
	updated, err := svc.Modify(context.Background(), order.ID, []string{"Soda"}, []string{"Soda"}, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pizza"}, updated.Items)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestModify_RemoveDeletesEveryOccurrence(t *testing.T) {
	svc, _ := newOrderService(t)
	order, err := svc.Create(context.Background(), 2, []string{"Soda", "Pizza", "Soda"})
	assert.NoError(t, err)

	updated, err := svc.Modify(context.Background(), order.ID, []string{"Soda"}, []string{"Soda"}, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Pizza"}, updated.Items)
}

func TestModify_MayEmptyTheOrder(t *testing.T) {
	svc, _ := newOrderService(t)
	order, err := svc.Create(context.Background(), 2, []string{"Pizza"})
	assert.NoError(t, err)

	updated, err := svc.Modify(context.Background(), order.ID, nil, []string{"Pizza"}, "")
	assert.NoError(t, err)
	assert.Empty(t, updated.Items, "post-creation edits may empty the order")
}

func TestModify_NotesLastWriteWins(t *testing.T) {
	svc, _ := newOrderService(t)
	order, err := svc.Create(context.Background(), 2, []string{"Pizza"})
	assert.NoError(t, err)

	updated, err := svc.Modify(context.Background(), order.ID, nil, nil, "no onions")
	assert.NoError(t, err)
	assert.Equal(t, "no onions", updated.Notes)

	// Empty notes are not an overwrite.
	updated, err = svc.Modify(context.Background(), order.ID, []string{"Soda"}, nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "no onions", updated.Notes)

	updated, err = svc.Modify(context.Background(), order.ID, nil, nil, "extra cheese")
	assert.NoError(t, err)
	assert.Equal(t, "extra cheese", updated.Notes)
}

func TestModify_UnknownOrder(t *testing.T) {
	svc, b := newOrderService(t)

	_, err := svc.Modify(context.Background(), 99, []string{"Soda"}, nil, "")
	assert.Error(t, err)
	assert.Equal(t, pkg.ErrOrderNotFoundCode, appErrCode(t, err))
	assert.Empty(t, b.snapshots)
}

func TestCancel_RemovesOrderEntirely(t *testing.T) {
	svc, b := newOrderService(t)
	order, err := svc.Create(context.Background(), 4, []string{"Salad"})
	assert.NoError(t, err)

	result, err := svc.Cancel(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, order.ID, result.Order.ID)

	assert.Empty(t, svc.List(context.Background()))
	last := b.snapshots[len(b.snapshots)-1]
	assert.Empty(t, last, "broadcast after cancel must exclude the order")

	_, err = svc.Cancel(context.Background(), order.ID)
	assert.Equal(t, pkg.ErrOrderNotFoundCode, appErrCode(t, err))
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newOrderService(t)
	order, err := svc.Create(context.Background(), 4, []string{"Salad"})
	assert.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), order.ID, "bogus")
	assert.Error(t, err)
	assert.Equal(t, pkg.ErrValidationCode, appErrCode(t, err))
}

func TestSetStatus_AllTransitionsAllowed(t *testing.T) {
	svc, _ := newOrderService(t)
	order, err := svc.Create(context.Background(), 4, []string{"Salad"})
	assert.NoError(t, err)

	var prev *models.Order
	for _, status := range models.OrderStatuses {
		updated, err := svc.SetStatus(context.Background(), order.ID, status)
		assert.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.NotNil(t, updated.UpdatedAt)
		if prev != nil {
			assert.False(t, updated.UpdatedAt.Before(*prev.UpdatedAt))
		}
		prev = &updated
	}
}

func TestMutations_BroadcastExactlyOnce(t *testing.T) {
	svc, b := newOrderService(t)

	order, err := svc.Create(context.Background(), 1, []string{"Pizza"})
	assert.NoError(t, err)
	_, err = svc.Modify(context.Background(), order.ID, []string{"Soda"}, nil, "")
	assert.NoError(t, err)
	_, err = svc.Cancel(context.Background(), order.ID)
	assert.NoError(t, err)

	// create -> modify -> cancel publishes exactly three snapshots.
	assert.Len(t, b.snapshots, 3)
	assert.Len(t, b.snapshots[0], 1)
	assert.Equal(t, []string{"Pizza", "Soda"}, b.snapshots[1][0].Items)
	assert.Empty(t, b.snapshots[2])
}

func TestList_DoesNotBroadcast(t *testing.T) {
	svc, b := newOrderService(t)

	_, err := svc.Create(context.Background(), 1, []string{"Pizza"})
	assert.NoError(t, err)
	before := len(b.snapshots)

	_ = svc.List(context.Background())
	assert.Len(t, b.snapshots, before)
}
