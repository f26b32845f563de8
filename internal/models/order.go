package models

import "time"

type OrderStatus string

const (
	OrderStatusQueued     OrderStatus = "queued"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusServed     OrderStatus = "served"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses is the closed set of accepted statuses; any other value is rejected.
var OrderStatuses = []OrderStatus{
	OrderStatusQueued,
	OrderStatusInProgress,
	OrderStatusReady,
	OrderStatusServed,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is one table's active food request. UpdatedAt stays nil until the
// first mutation after creation.
type Order struct {
	ID        int64       `json:"id"`
	TableID   int64       `json:"table_id"`
	Items     []string    `json:"items"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt *time.Time  `json:"updated_at,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// Clone returns a copy that shares no mutable state with the receiver.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]string(nil), o.Items...)
	if o.UpdatedAt != nil {
		t := *o.UpdatedAt
		c.UpdatedAt = &t
	}
	return c
}
