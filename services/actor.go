package services

import "github.com/okapine/tablebook/models"

// Actor is the already-authenticated caller, as supplied by the identity
// layer. The core trusts the role string.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsStaff() bool {
	return models.IsStaff(a.Role)
}
