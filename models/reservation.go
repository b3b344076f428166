package models

import "time"

// Reservation statuses. Completed, cancelled and no_show are terminal.
const (
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no_show"
)

type Reservation struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID" json:"user"`
	TableID            *uint     `gorm:"index" json:"table_id,omitempty"`
	Table              *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Date               time.Time `gorm:"not null;index" json:"date"`
	StartTime          string    `gorm:"type:varchar(5);not null" json:"start_time"`
	PartySize          int       `gorm:"not null" json:"party_size"`
	Status             string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	SpecialRequest     string    `gorm:"type:text" json:"special_request"`
	ConfirmationNumber string    `gorm:"type:varchar(30);unique;not null" json:"confirmation_number"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

// ValidReservationStatus -> allowed-value check for staff status overwrites.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationConfirmed, ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}
