package services

import "tableside/internal/models"

// OrdersBroadcaster publishes the full order collection to every connected
// realtime subscriber. Publishing is fire-and-forget: implementations must
// never block a mutation on subscriber delivery.
type OrdersBroadcaster interface {
	PublishOrders(orders []models.Order)
}

// NopBroadcaster is used when no realtime channel is wired (tests, tooling).
type NopBroadcaster struct{}

func (NopBroadcaster) PublishOrders([]models.Order) {}
