package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/okapine/tablebook/apperrors"
	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/utils"
)

// Menu endpoints are plain store mapping: the booking core only reads menu
// items for existence checks and price snapshots.
type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// List -> menu items, optionally one category or available-only.
func (mc *MenuController) List(c *gin.Context) {
	q := mc.DB.Order("category asc, name asc")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		q = q.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu items retrieved successfully", items)
}

// Get -> one menu item.
func (mc *MenuController) Get(c *gin.Context) {
	id, ok := paramUint(c, "menu_item_id")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, apperrors.NotFoundf("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item retrieved successfully", item)
}

// Create -> staff adds a menu item.
func (mc *MenuController) Create(c *gin.Context) {
	if !currentActor(c).IsStaff() {
		utils.RespondAppError(c, apperrors.Forbiddenf("access denied"))
		return
	}

	var req struct {
		Name            string  `json:"name" binding:"required"`
		Category        string  `json:"category" binding:"required"`
		Description     string  `json:"description"`
		Price           float64 `json:"price" binding:"required"`
		PreparationTime int     `json:"preparation_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price <= 0 {
		utils.RespondAppError(c, apperrors.Validationf("price must be positive"))
		return
	}

	item := models.MenuItem{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Price:           req.Price,
		IsAvailable:     true,
		PreparationTime: req.PreparationTime,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New menu item created: %s (%s)", item.Name, item.Category)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

// Update -> staff patches a menu item. A price change here never touches
// prices already snapshotted on order items.
func (mc *MenuController) Update(c *gin.Context) {
	if !currentActor(c).IsStaff() {
		utils.RespondAppError(c, apperrors.Forbiddenf("access denied"))
		return
	}

	id, ok := paramUint(c, "menu_item_id")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondAppError(c, apperrors.NotFoundf("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Category        *string  `json:"category"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		IsAvailable     *bool    `json:"is_available"`
		PreparationTime *int     `json:"preparation_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondAppError(c, apperrors.Validationf("price must be positive"))
			return
		}
		updates["price"] = *req.Price
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.PreparationTime != nil {
		updates["preparation_time"] = *req.PreparationTime
	}

	if len(updates) > 0 {
		if err := mc.DB.Model(&item).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}
