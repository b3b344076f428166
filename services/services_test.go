package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/utils"
)

// setupTestDB -> a private in-memory SQLite database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

var seedUserSeq atomic.Uint64

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  role,
		Email:     fmt.Sprintf("%s-%s-%d@example.com", role, t.Name(), seedUserSeq.Add(1)),
		Password:  "irrelevant",
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedTable(t *testing.T, db *gorm.DB, number string, capacity int, status string) models.Table {
	t.Helper()
	table := models.Table{
		TableNumber: number,
		Capacity:    capacity,
		Location:    "main hall",
		Status:      status,
	}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Category:    "mains",
		Price:       price,
		IsAvailable: true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return item
}

// fixedNow -> a deterministic clock for admission-control tests.
func fixedNow(value time.Time) func() time.Time {
	return func() time.Time { return value }
}

// recordingPublisher captures events for assertions.
type recordingPublisher struct {
	created []models.Order
	updated []models.Order
}

func (p *recordingPublisher) OrderCreated(order models.Order) {
	p.created = append(p.created, order)
}

func (p *recordingPublisher) OrderStatusUpdated(order models.Order) {
	p.updated = append(p.updated, order)
}
