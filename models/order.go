package models

import "time"

// Order statuses. Served and cancelled are terminal on the happy path.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	OrderNumber   string       `gorm:"type:varchar(30);unique;not null" json:"order_number"`
	ReservationID *uint        `gorm:"index" json:"reservation_id,omitempty"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	TableID       uint         `gorm:"not null;index" json:"table_id"`
	Table         Table        `gorm:"foreignKey:TableID" json:"table"`
	Status        string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes         string       `gorm:"type:text" json:"notes"`
	OrderTime     time.Time    `gorm:"not null;index" json:"order_time"`
	ReadyTime     *time.Time   `json:"ready_time,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
	OrderItems    []OrderItem  `gorm:"foreignKey:OrderID" json:"order_items"`
}

// Total -> derived sum of quantity x snapshot price. Never stored.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.OrderItems {
		total += item.Subtotal()
	}
	return total
}

// ValidOrderStatus -> allowed-value check for kitchen status updates.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return true
	}
	return false
}
