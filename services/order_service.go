package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/timewindow"
	"github.com/okapine/tablebook/utils"
)

type OrderService struct {
	db        *gorm.DB
	publisher EventPublisher
	now       func() time.Time
}

func NewOrderService(db *gorm.DB, publisher EventPublisher) *OrderService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &OrderService{db: db, publisher: publisher, now: time.Now}
}

type OrderItemInput struct {
	MenuItemID   uint   `json:"menu_item_id" binding:"required"`
	Quantity     int    `json:"quantity"`
	SpecialNotes string `json:"special_notes"`
}

type CreateOrderInput struct {
	TableID       uint             `json:"table_id" binding:"required"`
	ReservationID *uint            `json:"reservation_id"`
	Notes         string           `json:"notes"`
	Items         []OrderItemInput `json:"items" binding:"required"`
}

// Create -> order plus items committed as one unit, with each item's price
// snapshotted from the menu at creation time. The created event fires only
// after the transaction commits.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if in.TableID == 0 {
		return nil, apperrors.Validationf("table id is required")
	}
	if len(in.Items) == 0 {
		return nil, apperrors.Validationf("order must have at least one item")
	}

	var table models.Table
	if err := s.db.First(&table, in.TableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("table not found")
		}
		return nil, err
	}

	if in.ReservationID != nil {
		var reservation models.Reservation
		if err := s.db.First(&reservation, *in.ReservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFoundf("reservation not found")
			}
			return nil, err
		}
	}

	// Two line items may share a menu item, so resolve the distinct id set.
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			ids = append(ids, item.MenuItemID)
		}
	}

	var menuItems []models.MenuItem
	if err := s.db.Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		return nil, err
	}
	if len(menuItems) != len(ids) {
		return nil, apperrors.NotFoundf("one or more menu items not found")
	}

	prices := make(map[uint]float64, len(menuItems))
	for _, m := range menuItems {
		prices[m.ID] = m.Price
	}

	order := models.Order{
		OrderNumber:   utils.NewOrderNumber(),
		TableID:       in.TableID,
		ReservationID: in.ReservationID,
		Status:        models.OrderPending,
		Notes:         in.Notes,
		OrderTime:     s.now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			quantity := item.Quantity
			if quantity < 1 {
				quantity = 1
			}
			items = append(items, models.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   item.MenuItemID,
				Quantity:     quantity,
				PriceAtOrder: prices[item.MenuItemID],
				SpecialNotes: item.SpecialNotes,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflictf("order number collision, please retry")
		}
		return nil, err
	}

	full, err := s.hydrate(order.ID)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("New order created: %s", full.OrderNumber)
	s.publisher.OrderCreated(*full)
	return full, nil
}

// UpdateStatus -> any allowed value is accepted, no forward-only enforcement.
// ReadyTime is stamped exactly once, on the first transition into ready.
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.Validationf("status must be one of: pending, preparing, ready, served, cancelled")
	}

	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.OrderReady && order.Status != models.OrderReady {
		updates["ready_time"] = s.now()
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}

	full, err := s.hydrate(id)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s status updated to %s", full.OrderNumber, status)
	s.publisher.OrderStatusUpdated(*full)
	return full, nil
}

func (s *OrderService) hydrate(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.
		Preload("Table").
		Preload("Reservation").
		Preload("OrderItems.MenuItem").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Get -> one order with table, reservation and items.
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.hydrate(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("order not found")
		}
		return nil, err
	}
	return order, nil
}

type OrderFilters struct {
	Status  string
	TableID uint
	Date    string
}

// List -> orders newest first, optionally filtered by status, table or day.
func (s *OrderService) List(f OrderFilters) ([]models.Order, error) {
	q := s.db.Preload("Table").Preload("OrderItems.MenuItem")

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.TableID != 0 {
		q = q.Where("table_id = ?", f.TableID)
	}
	if f.Date != "" {
		day, err := timewindow.ParseDate(f.Date)
		if err != nil {
			return nil, apperrors.Validationf("%v", err)
		}
		q = q.Where("order_time >= ? AND order_time < ?", day, day.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := q.Order("order_time desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
