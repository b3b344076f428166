package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/timewindow"
	"github.com/okapine/tablebook/utils"
)

const (
	minPartySize = 1
	maxPartySize = 20

	// Lead time required before the booked instant, and the cutoff before
	// which a cancellation must arrive.
	bookingLeadTime    = 2 * time.Hour
	cancellationCutoff = 2 * time.Hour

	// How far ahead a reservation may be placed.
	advanceBookingWindow = 30
)

type ReservationService struct {
	db  *gorm.DB
	now func() time.Time

	// slots serializes the overlap-check-then-create sequence per
	// (table, date) so two concurrent callers cannot both pass the check
	// and commit conflicting reservations.
	mu    sync.Mutex
	slots map[string]*sync.Mutex
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		db:    db,
		now:   time.Now,
		slots: make(map[string]*sync.Mutex),
	}
}

func (s *ReservationService) slotLock(tableID uint, date time.Time) *sync.Mutex {
	key := fmt.Sprintf("%d|%s", tableID, date.Format("2006-01-02"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.slots[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.slots[key] = l
	return l
}

type CreateReservationInput struct {
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	PartySize      int    `json:"party_size" binding:"required"`
	SpecialRequest string `json:"special_request"`
	TableID        *uint  `json:"table_id"`
}

// Create -> admission-checked reservation with status confirmed.
func (s *ReservationService) Create(userID uint, in CreateReservationInput) (*models.Reservation, error) {
	if in.PartySize < minPartySize || in.PartySize > maxPartySize {
		return nil, apperrors.Validationf("party size must be between %d and %d", minPartySize, maxPartySize)
	}

	day, err := timewindow.ParseDate(in.Date)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	clock, err := timewindow.ParseClock(in.StartTime)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}

	now := s.now()
	if day.Before(timewindow.Midnight(now)) {
		return nil, apperrors.Validationf("cannot make reservations for past dates")
	}

	if timewindow.At(day, clock).Before(now.Add(bookingLeadTime)) {
		return nil, apperrors.Validationf("reservations must be at least 2 hours in advance")
	}

	if day.After(now.AddDate(0, 0, advanceBookingWindow)) {
		return nil, apperrors.Validationf("reservations can only be made up to 30 days in advance")
	}

	reservation := models.Reservation{
		UserID:             userID,
		TableID:            in.TableID,
		Date:               day,
		StartTime:          in.StartTime,
		PartySize:          in.PartySize,
		SpecialRequest:     in.SpecialRequest,
		Status:             models.ReservationConfirmed,
		ConfirmationNumber: utils.NewConfirmationNumber(),
	}

	if in.TableID != nil {
		// Hold the slot lock across the overlap check and the insert.
		lock := s.slotLock(*in.TableID, day)
		lock.Lock()
		defer lock.Unlock()

		taken, err := s.hasOverlap(*in.TableID, day, clock, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.Conflictf("this table is already reserved for the selected time")
		}
		if err := s.insert(&reservation); err != nil {
			return nil, err
		}
	} else {
		if err := s.insert(&reservation); err != nil {
			return nil, err
		}
	}

	utils.InfoLogger.Printf("New reservation created: %s by user %d", reservation.ConfirmationNumber, userID)
	return s.hydrate(reservation.ID)
}

func (s *ReservationService) insert(r *models.Reservation) error {
	if err := s.db.Create(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflictf("confirmation number collision, please retry")
		}
		return err
	}
	return nil
}

func (s *ReservationService) hasOverlap(tableID uint, day time.Time, clock time.Duration, excludeID uint) (bool, error) {
	var existing []models.Reservation
	if err := s.db.
		Where("table_id = ? AND date = ? AND status = ?", tableID, day, models.ReservationConfirmed).
		Find(&existing).Error; err != nil {
		return false, err
	}

	requested := timewindow.SeatingWindow(timewindow.At(day, clock))
	for _, r := range existing {
		if r.ID == excludeID {
			continue
		}
		start, err := timewindow.ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		if requested.Overlaps(timewindow.SeatingWindow(timewindow.At(day, start))) {
			return true, nil
		}
	}
	return false, nil
}

func (s *ReservationService) hydrate(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.Preload("User").Preload("Table").First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Get -> one reservation, visible to its owner or to staff.
func (s *ReservationService) Get(actor Actor, id uint) (*models.Reservation, error) {
	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if r.UserID != actor.UserID && !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}
	return s.hydrate(r.ID)
}

func (s *ReservationService) find(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("reservation not found")
		}
		return nil, err
	}
	return &r, nil
}

// ListForUser -> a customer's own reservations, optionally filtered by status
// or restricted to upcoming dates.
func (s *ReservationService) ListForUser(userID uint, status string, upcoming bool) ([]models.Reservation, error) {
	q := s.db.Preload("Table").Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if upcoming {
		q = q.Where("date >= ?", timewindow.Midnight(time.Now()))
	}

	var reservations []models.Reservation
	if err := q.Order("date desc, start_time desc").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListAll -> every reservation, staff view.
func (s *ReservationService) ListAll(actor Actor, status, date string) ([]models.Reservation, error) {
	if !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}

	q := s.db.Preload("User").Preload("Table")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if date != "" {
		day, err := timewindow.ParseDate(date)
		if err != nil {
			return nil, apperrors.Validationf("%v", err)
		}
		q = q.Where("date = ?", day)
	}

	var reservations []models.Reservation
	if err := q.Order("date desc, start_time desc").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

type UpdateReservationInput struct {
	Date           *string `json:"date"`
	StartTime      *string `json:"start_time"`
	PartySize      *int    `json:"party_size"`
	SpecialRequest *string `json:"special_request"`
	TableID        *uint   `json:"table_id"`
}

// Update -> per-field patch by the owner or staff. Table reassignment does not
// re-run the overlap check, matching the historical behavior.
func (s *ReservationService) Update(actor Actor, id uint, in UpdateReservationInput) (*models.Reservation, error) {
	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if r.UserID != actor.UserID && !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}
	if r.Status == models.ReservationCancelled {
		return nil, apperrors.InvalidOperationf("cannot modify a cancelled reservation")
	}

	updates := map[string]interface{}{}

	if in.Date != nil {
		day, err := timewindow.ParseDate(*in.Date)
		if err != nil {
			return nil, apperrors.Validationf("%v", err)
		}
		if day.Before(timewindow.Midnight(s.now())) {
			return nil, apperrors.Validationf("cannot set past dates")
		}
		updates["date"] = day
	}

	if in.StartTime != nil {
		if _, err := timewindow.ParseClock(*in.StartTime); err != nil {
			return nil, apperrors.Validationf("%v", err)
		}
		updates["start_time"] = *in.StartTime
	}

	if in.PartySize != nil {
		if *in.PartySize < minPartySize || *in.PartySize > maxPartySize {
			return nil, apperrors.Validationf("party size must be between %d and %d", minPartySize, maxPartySize)
		}
		updates["party_size"] = *in.PartySize
	}

	if in.SpecialRequest != nil {
		updates["special_request"] = *in.SpecialRequest
	}

	if in.TableID != nil {
		updates["table_id"] = *in.TableID
	}

	if len(updates) > 0 {
		if err := s.db.Model(r).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	utils.InfoLogger.Printf("Reservation %d updated by user %d", id, actor.UserID)
	return s.hydrate(id)
}

// Cancel -> owner or staff, only outside the 2h cutoff. Cancelling twice is an
// error, never a silent success.
func (s *ReservationService) Cancel(actor Actor, id uint) (*models.Reservation, error) {
	r, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if r.UserID != actor.UserID && !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}
	if r.Status == models.ReservationCancelled {
		return nil, apperrors.InvalidOperationf("reservation already cancelled")
	}

	clock, err := timewindow.ParseClock(r.StartTime)
	if err != nil {
		return nil, err
	}
	start := timewindow.At(timewindow.Midnight(r.Date), clock)
	if s.now().After(start.Add(-cancellationCutoff)) {
		return nil, apperrors.InvalidOperationf("reservations can only be cancelled up to 2 hours before the scheduled time")
	}

	if err := s.db.Model(r).Update("status", models.ReservationCancelled).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d cancelled by user %d", id, actor.UserID)
	return s.hydrate(id)
}

// AssignTable -> staff seats a party at a concrete table. Capacity is checked;
// overlap against the new table is not, matching the historical behavior.
func (s *ReservationService) AssignTable(actor Actor, reservationID, tableID uint) (*models.Reservation, error) {
	if !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}

	r, err := s.find(reservationID)
	if err != nil {
		return nil, err
	}

	var table models.Table
	if err := s.db.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("table not found")
		}
		return nil, err
	}

	if table.Capacity < r.PartySize {
		return nil, apperrors.InvalidOperationf(
			"table capacity (%d) is insufficient for party size (%d)", table.Capacity, r.PartySize)
	}

	if err := s.db.Model(r).Update("table_id", tableID).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d assigned to table %s", reservationID, table.TableNumber)
	return s.hydrate(reservationID)
}

// UpdateStatus -> staff overwrites the status with any allowed value. No
// successor-table enforcement, matching the historical behavior.
func (s *ReservationService) UpdateStatus(actor Actor, id uint, status string) (*models.Reservation, error) {
	if !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}
	if !models.ValidReservationStatus(status) {
		return nil, apperrors.Validationf("status must be one of: confirmed, completed, cancelled, no_show")
	}

	r, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(r).Update("status", status).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d status set to %s", id, status)
	return s.hydrate(id)
}
