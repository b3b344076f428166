package services

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
)

// Admission tests pin the clock to 2024-05-15 12:00 UTC.
var testNow = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func TestCreateReservationHappyPath(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	table := seedTable(t, db, "T01", 4, models.TableAvailable)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(user.ID, CreateReservationInput{
		Date:           "2024-05-20",
		StartTime:      "19:00",
		PartySize:      4,
		SpecialRequest: "window seat",
		TableID:        &table.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, reservation.Status)
	assert.Equal(t, user.ID, reservation.UserID)
	assert.Equal(t, "19:00", reservation.StartTime)
	assert.True(t, strings.HasPrefix(reservation.ConfirmationNumber, "RES-"))
	assert.NotNil(t, reservation.Table)
	assert.Equal(t, "T01", reservation.Table.TableNumber)
}

func TestCreateReservationAdmissionChecks(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	base := CreateReservationInput{Date: "2024-05-20", StartTime: "19:00", PartySize: 4}

	// Party size bounds.
	in := base
	in.PartySize = 0
	_, err := svc.Create(user.ID, in)
	assertKindValidation(t, err)

	in.PartySize = 21
	_, err = svc.Create(user.ID, in)
	assertKindValidation(t, err)

	// Past date.
	in = base
	in.Date = "2024-05-14"
	_, err = svc.Create(user.ID, in)
	assertKindValidation(t, err)
	assert.Contains(t, err.Error(), "past dates")

	// Less than 2 hours of lead time: now is 12:00, 13:00 today is too soon.
	in = base
	in.Date = "2024-05-15"
	in.StartTime = "13:00"
	_, err = svc.Create(user.ID, in)
	assertKindValidation(t, err)
	assert.Contains(t, err.Error(), "2 hours in advance")

	// Exactly 2 hours of lead time is accepted.
	in.StartTime = "14:00"
	_, err = svc.Create(user.ID, in)
	assert.NoError(t, err)

	// Beyond the 30 day window.
	in = base
	in.Date = "2024-06-24"
	_, err = svc.Create(user.ID, in)
	assertKindValidation(t, err)
	assert.Contains(t, err.Error(), "30 days")

	// Malformed date and time.
	in = base
	in.Date = "junk"
	_, err = svc.Create(user.ID, in)
	assertKindValidation(t, err)

	in = base
	in.StartTime = "7pm"
	_, err = svc.Create(user.ID, in)
	assertKindValidation(t, err)
}

func TestCreateReservationTableConflict(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	table := seedTable(t, db, "T01", 4, models.TableAvailable)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	in := CreateReservationInput{Date: "2024-05-20", StartTime: "19:00", PartySize: 2, TableID: &table.ID}
	_, err := svc.Create(user.ID, in)
	assert.NoError(t, err)

	// Same slot.
	_, err = svc.Create(user.ID, in)
	assertKind(t, err, apperrors.KindConflict)

	// Overlapping slot.
	in.StartTime = "20:30"
	_, err = svc.Create(user.ID, in)
	assertKind(t, err, apperrors.KindConflict)

	// Adjacent slot just outside the window.
	in.StartTime = "21:00"
	_, err = svc.Create(user.ID, in)
	assert.NoError(t, err)

	// A cancelled reservation frees the slot.
	other := seedTable(t, db, "T02", 4, models.TableAvailable)
	in = CreateReservationInput{Date: "2024-05-20", StartTime: "12:00", PartySize: 2, TableID: &other.ID}
	first, err := svc.Create(user.ID, in)
	assert.NoError(t, err)
	db.Model(&models.Reservation{}).Where("id = ?", first.ID).
		Update("status", models.ReservationCancelled)
	_, err = svc.Create(user.ID, in)
	assert.NoError(t, err)
}

func TestCreateReservationConcurrentSameSlot(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	table := seedTable(t, db, "T01", 4, models.TableAvailable)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	const attempts = 8
	in := CreateReservationInput{Date: "2024-05-20", StartTime: "19:00", PartySize: 2, TableID: &table.ID}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(user.ID, in)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case apperrors.KindOf(err) == apperrors.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	var count int64
	db.Model(&models.Reservation{}).
		Where("table_id = ? AND status = ?", table.ID, models.ReservationConfirmed).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCancelReservation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(user.ID, CreateReservationInput{
		Date: "2024-05-20", StartTime: "19:00", PartySize: 2,
	})
	assert.NoError(t, err)

	actor := Actor{UserID: user.ID, Role: models.RoleCustomer}

	cancelled, err := svc.Cancel(actor, reservation.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, cancelled.Status)

	// Cancelling twice always fails, never a silent success.
	_, err = svc.Cancel(actor, reservation.ID)
	assertKind(t, err, apperrors.KindInvalidOperation)
	assert.Contains(t, err.Error(), "already cancelled")
}

func TestCancelReservationInsideCutoff(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(user.ID, CreateReservationInput{
		Date: "2024-05-15", StartTime: "15:00", PartySize: 2,
	})
	assert.NoError(t, err)

	// 13:30 is inside the 2h cutoff before a 15:00 seating.
	svc.now = fixedNow(time.Date(2024, 5, 15, 13, 30, 0, 0, time.UTC))

	actor := Actor{UserID: user.ID, Role: models.RoleCustomer}
	_, err = svc.Cancel(actor, reservation.ID)
	assertKind(t, err, apperrors.KindInvalidOperation)
	assert.Contains(t, err.Error(), "2 hours before")
}

func TestReservationOwnershipChecks(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, models.RoleCustomer)
	stranger := seedUser(t, db, models.RoleCustomer)
	staff := seedUser(t, db, models.RoleStaff)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(owner.ID, CreateReservationInput{
		Date: "2024-05-20", StartTime: "19:00", PartySize: 2,
	})
	assert.NoError(t, err)

	_, err = svc.Get(Actor{UserID: stranger.ID, Role: models.RoleCustomer}, reservation.ID)
	assertKind(t, err, apperrors.KindForbidden)

	_, err = svc.Get(Actor{UserID: staff.ID, Role: models.RoleStaff}, reservation.ID)
	assert.NoError(t, err)

	_, err = svc.Get(Actor{UserID: owner.ID, Role: models.RoleCustomer}, reservation.ID)
	assert.NoError(t, err)
}

func TestUpdateReservation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(user.ID, CreateReservationInput{
		Date: "2024-05-20", StartTime: "19:00", PartySize: 2,
	})
	assert.NoError(t, err)

	actor := Actor{UserID: user.ID, Role: models.RoleCustomer}

	newSize := 6
	updated, err := svc.Update(actor, reservation.ID, UpdateReservationInput{PartySize: &newSize})
	assert.NoError(t, err)
	assert.Equal(t, 6, updated.PartySize)

	badSize := 25
	_, err = svc.Update(actor, reservation.ID, UpdateReservationInput{PartySize: &badSize})
	assertKindValidation(t, err)

	pastDate := "2024-05-01"
	_, err = svc.Update(actor, reservation.ID, UpdateReservationInput{Date: &pastDate})
	assertKindValidation(t, err)

	// A cancelled reservation rejects any modification.
	db.Model(&models.Reservation{}).Where("id = ?", reservation.ID).
		Update("status", models.ReservationCancelled)
	_, err = svc.Update(actor, reservation.ID, UpdateReservationInput{PartySize: &newSize})
	assertKind(t, err, apperrors.KindInvalidOperation)
}

func TestAssignTableCapacityCheck(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	staff := seedUser(t, db, models.RoleStaff)
	small := seedTable(t, db, "T01", 2, models.TableAvailable)
	big := seedTable(t, db, "T02", 8, models.TableAvailable)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(user.ID, CreateReservationInput{
		Date: "2024-05-20", StartTime: "19:00", PartySize: 6,
	})
	assert.NoError(t, err)

	staffActor := Actor{UserID: staff.ID, Role: models.RoleStaff}

	// Customers cannot assign tables.
	_, err = svc.AssignTable(Actor{UserID: user.ID, Role: models.RoleCustomer}, reservation.ID, big.ID)
	assertKind(t, err, apperrors.KindForbidden)

	// Capacity below party size is rejected with both numbers in the message.
	_, err = svc.AssignTable(staffActor, reservation.ID, small.ID)
	assertKind(t, err, apperrors.KindInvalidOperation)
	assert.Contains(t, err.Error(), "(2)")
	assert.Contains(t, err.Error(), "(6)")

	assigned, err := svc.AssignTable(staffActor, reservation.ID, big.ID)
	assert.NoError(t, err)
	assert.Equal(t, big.ID, *assigned.TableID)

	_, err = svc.AssignTable(staffActor, reservation.ID, 9999)
	assertKind(t, err, apperrors.KindNotFound)

	_, err = svc.AssignTable(staffActor, 9999, big.ID)
	assertKind(t, err, apperrors.KindNotFound)
}

func TestUpdateReservationStatusOverwrite(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleCustomer)
	staff := seedUser(t, db, models.RoleStaff)

	svc := NewReservationService(db)
	svc.now = fixedNow(testNow)

	reservation, err := svc.Create(user.ID, CreateReservationInput{
		Date: "2024-05-20", StartTime: "19:00", PartySize: 2,
	})
	assert.NoError(t, err)

	staffActor := Actor{UserID: staff.ID, Role: models.RoleStaff}

	updated, err := svc.UpdateStatus(staffActor, reservation.ID, models.ReservationNoShow)
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationNoShow, updated.Status)

	// Any allowed value is accepted, including moving back to confirmed.
	updated, err = svc.UpdateStatus(staffActor, reservation.ID, models.ReservationConfirmed)
	assert.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, updated.Status)

	_, err = svc.UpdateStatus(staffActor, reservation.ID, "seated")
	assertKindValidation(t, err)

	_, err = svc.UpdateStatus(Actor{UserID: user.ID, Role: models.RoleCustomer}, reservation.ID, models.ReservationCompleted)
	assertKind(t, err, apperrors.KindForbidden)
}
