package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okapine/tablebook/services"
	"github.com/okapine/tablebook/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
	Availability *services.AvailabilityService
}

func NewReservationController(r *services.ReservationService, a *services.AvailabilityService) *ReservationController {
	return &ReservationController{Reservations: r, Availability: a}
}

// CheckAvailability -> which tables can take a party for a date/time slot.
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := rc.Availability.Check(c.Query("date"), c.Query("time"), partySize)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	message := "Tables available"
	if !result.IsAvailable {
		message = "No tables available for this time slot"
	}
	utils.RespondJSON(c, http.StatusOK, message, result)
}

// Create -> new reservation for the authenticated customer.
func (rc *ReservationController) Create(c *gin.Context) {
	var in services.CreateReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.Create(currentActor(c).UserID, in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// ListMine -> the caller's reservations, optionally filtered.
func (rc *ReservationController) ListMine(c *gin.Context) {
	reservations, err := rc.Reservations.ListForUser(
		currentActor(c).UserID,
		c.Query("status"),
		c.Query("upcoming") == "true",
	)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations retrieved successfully", gin.H{
		"count":        len(reservations),
		"reservations": reservations,
	})
}

// ListAll -> staff view across all customers.
func (rc *ReservationController) ListAll(c *gin.Context) {
	reservations, err := rc.Reservations.ListAll(currentActor(c), c.Query("status"), c.Query("date"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservations retrieved successfully", gin.H{
		"count":        len(reservations),
		"reservations": reservations,
	})
}

// Get -> one reservation, owner or staff.
func (rc *ReservationController) Get(c *gin.Context) {
	id, ok := paramUint(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Get(currentActor(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation retrieved successfully", reservation)
}

// Update -> per-field patch, owner or staff.
func (rc *ReservationController) Update(c *gin.Context) {
	id, ok := paramUint(c, "reservation_id")
	if !ok {
		return
	}

	var in services.UpdateReservationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.Update(currentActor(c), id, in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

// Cancel -> soft delete by status, subject to the 2h cutoff.
func (rc *ReservationController) Cancel(c *gin.Context) {
	id, ok := paramUint(c, "reservation_id")
	if !ok {
		return
	}

	reservation, err := rc.Reservations.Cancel(currentActor(c), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled successfully", reservation)
}

// AssignTable -> staff seats a reservation at a table.
func (rc *ReservationController) AssignTable(c *gin.Context) {
	id, ok := paramUint(c, "reservation_id")
	if !ok {
		return
	}

	var body struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.AssignTable(currentActor(c), id, body.TableID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table assigned successfully", reservation)
}

// UpdateStatus -> staff status overwrite.
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := paramUint(c, "reservation_id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Reservations.UpdateStatus(currentActor(c), id, body.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated successfully", reservation)
}
