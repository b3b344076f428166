package models

import "time"

// MenuItem is read-only to the booking and order core: it is consulted for
// existence checks and price snapshots only.
type MenuItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Category        string    `gorm:"type:varchar(100);not null" json:"category"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable     bool      `gorm:"not null;default:true" json:"is_available"`
	PreparationTime int       `json:"preparation_time"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
