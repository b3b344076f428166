package models

import "time"

// Roles recognized by the role claims coming from the identity layer.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleKitchen  = "kitchen"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsStaff -> whether a role may act on other users' reservations and orders.
func IsStaff(role string) bool {
	switch role {
	case RoleStaff, RoleKitchen, RoleManager, RoleAdmin:
		return true
	}
	return false
}
