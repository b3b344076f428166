package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/utils"
)

const (
	minTableCapacity = 1
	maxTableCapacity = 20
)

type TableService struct {
	db *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

type CreateTableInput struct {
	TableNumber string `json:"table_number" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
	Location    string `json:"location"`
}

// Create -> new table with a unique number, status available.
func (s *TableService) Create(actor Actor, in CreateTableInput) (*models.Table, error) {
	if !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}
	if in.TableNumber == "" {
		return nil, apperrors.Validationf("table number is required")
	}
	if in.Capacity < minTableCapacity || in.Capacity > maxTableCapacity {
		return nil, apperrors.Validationf("capacity must be between %d and %d", minTableCapacity, maxTableCapacity)
	}

	table := models.Table{
		TableNumber: in.TableNumber,
		Capacity:    in.Capacity,
		Location:    in.Location,
		Status:      models.TableAvailable,
	}
	if err := s.db.Create(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflictf("table with this number already exists")
		}
		return nil, err
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	return &table, nil
}

type UpdateTableInput struct {
	TableNumber *string `json:"table_number"`
	Capacity    *int    `json:"capacity"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

// Update -> per-field patch; number stays unique, status stays in the enum.
func (s *TableService) Update(actor Actor, id uint, in UpdateTableInput) (*models.Table, error) {
	if !actor.IsStaff() {
		return nil, apperrors.Forbiddenf("access denied")
	}

	table, err := s.find(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if in.TableNumber != nil && *in.TableNumber != table.TableNumber {
		var count int64
		if err := s.db.Model(&models.Table{}).
			Where("table_number = ?", *in.TableNumber).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.Conflictf("table with this number already exists")
		}
		updates["table_number"] = *in.TableNumber
	}

	if in.Capacity != nil {
		if *in.Capacity < minTableCapacity || *in.Capacity > maxTableCapacity {
			return nil, apperrors.Validationf("capacity must be between %d and %d", minTableCapacity, maxTableCapacity)
		}
		updates["capacity"] = *in.Capacity
	}

	if in.Location != nil {
		updates["location"] = *in.Location
	}

	if in.Status != nil {
		if !models.ValidTableStatus(*in.Status) {
			return nil, apperrors.Validationf("status must be one of: available, occupied, reserved, maintenance")
		}
		updates["status"] = *in.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(table).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Conflictf("table with this number already exists")
			}
			return nil, err
		}
	}

	utils.InfoLogger.Printf("Table %d updated", id)
	return s.find(id)
}

// Delete -> blocked while any reservation or order history references the
// table; maintenance status is the soft-disable path.
func (s *TableService) Delete(actor Actor, id uint) error {
	if !actor.IsStaff() {
		return apperrors.Forbiddenf("access denied")
	}

	table, err := s.find(id)
	if err != nil {
		return err
	}

	var reservations, orders int64
	if err := s.db.Model(&models.Reservation{}).Where("table_id = ?", id).Count(&reservations).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.Order{}).Where("table_id = ?", id).Count(&orders).Error; err != nil {
		return err
	}
	if reservations > 0 || orders > 0 {
		return apperrors.InvalidOperationf(
			"cannot delete table with existing reservations or orders, set status to maintenance instead")
	}

	if err := s.db.Delete(table).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Table %d deleted (%s)", id, table.TableNumber)
	return nil
}

func (s *TableService) find(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("table not found")
		}
		return nil, err
	}
	return &table, nil
}

// Get -> one table.
func (s *TableService) Get(id uint) (*models.Table, error) {
	return s.find(id)
}

// List -> tables ordered by number, optionally filtered.
func (s *TableService) List(status string, minCapacity int) ([]models.Table, error) {
	q := s.db.Order("table_number asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if minCapacity > 0 {
		q = q.Where("capacity >= ?", minCapacity)
	}

	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}
