package models

import "time"

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Order omitted from JSON to avoid recursive nesting.
	Order        Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID   uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem     MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PriceAtOrder float64   `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	SpecialNotes string    `gorm:"type:text" json:"special_notes"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Subtotal -> line total at the snapshot price.
func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.PriceAtOrder
}
