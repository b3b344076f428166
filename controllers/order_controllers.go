package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okapine/tablebook/services"
	"github.com/okapine/tablebook/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(o *services.OrderService) *OrderController {
	return &OrderController{Orders: o}
}

// List -> all orders, newest first, with optional status/table/date filters.
func (oc *OrderController) List(c *gin.Context) {
	var filters services.OrderFilters
	filters.Status = c.Query("status")
	filters.Date = c.Query("date")
	if raw := c.Query("table_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		filters.TableID = uint(id)
	}

	orders, err := oc.Orders.List(filters)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved successfully", gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}

// Create -> order plus items in one commit, then the created event.
func (oc *OrderController) Create(c *gin.Context) {
	var in services.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Create(in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// Get -> one order with its items and derived total.
func (oc *OrderController) Get(c *gin.Context) {
	id, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Orders.Get(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved successfully", gin.H{
		"order": order,
		"total": order.Total(),
	})
}

// UpdateStatus -> kitchen/staff drives the order state machine.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := paramUint(c, "order_id")
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

	order, err := oc.Orders.UpdateStatus(id, body.Status)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated successfully", order)
}
