package services

import (
	"gorm.io/gorm"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/timewindow"
)

const maxSuggestedTables = 3

type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

type AvailabilityResult struct {
	IsAvailable     bool           `json:"is_available"`
	AvailableCount  int            `json:"available_table_count"`
	SuggestedTables []models.Table `json:"suggested_tables"`
}

// Check -> which tables can still take a party of the given size for the
// 2h window starting at date+startTime. Read-only, safe to call concurrently.
func (s *AvailabilityService) Check(date, startTime string, partySize int) (*AvailabilityResult, error) {
	if partySize < 1 {
		return nil, apperrors.Validationf("party size must be at least 1")
	}

	day, err := timewindow.ParseDate(date)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}
	clock, err := timewindow.ParseClock(startTime)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}

	// Candidates: big enough and not under maintenance. Tightest fit first,
	// table number breaks capacity ties so results are reproducible.
	var candidates []models.Table
	if err := s.db.
		Where("capacity >= ? AND status <> ?", partySize, models.TableMaintenance).
		Order("capacity asc, table_number asc").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := s.db.
		Where("date = ? AND status = ? AND table_id IS NOT NULL", day, models.ReservationConfirmed).
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	requested := timewindow.SeatingWindow(timewindow.At(day, clock))
	reserved := make(map[uint]bool)
	for _, r := range reservations {
		start, err := timewindow.ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		if requested.Overlaps(timewindow.SeatingWindow(timewindow.At(day, start))) {
			reserved[*r.TableID] = true
		}
	}

	free := make([]models.Table, 0, len(candidates))
	for _, t := range candidates {
		if !reserved[t.ID] {
			free = append(free, t)
		}
	}

	suggested := free
	if len(suggested) > maxSuggestedTables {
		suggested = suggested[:maxSuggestedTables]
	}

	return &AvailabilityResult{
		IsAvailable:     len(free) > 0,
		AvailableCount:  len(free),
		SuggestedTables: suggested,
	}, nil
}
