package services

import "github.com/okapine/tablebook/models"

// EventPublisher receives lifecycle events strictly after the underlying
// mutation has committed. Delivery is at-most-once and fire-and-forget: a
// failed publish must never surface as a mutation failure.
type EventPublisher interface {
	OrderCreated(order models.Order)
	OrderStatusUpdated(order models.Order)
}

// NopPublisher drops every event. Used where no real-time layer is attached.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(models.Order)       {}
func (NopPublisher) OrderStatusUpdated(models.Order) {}
