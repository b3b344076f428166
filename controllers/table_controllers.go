package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okapine/tablebook/services"
	"github.com/okapine/tablebook/utils"
)

type TableController struct {
	Tables *services.TableService
}

func NewTableController(t *services.TableService) *TableController {
	return &TableController{Tables: t}
}

// List -> tables ordered by number, optional status/capacity filters.
func (tc *TableController) List(c *gin.Context) {
	minCapacity := 0
	if raw := c.Query("capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		minCapacity = n
	}

	tables, err := tc.Tables.List(c.Query("status"), minCapacity)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables retrieved successfully", gin.H{
		"count":  len(tables),
		"tables": tables,
	})
}

// Get -> one table.
func (tc *TableController) Get(c *gin.Context) {
	id, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	table, err := tc.Tables.Get(id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table retrieved successfully", table)
}

// Create -> staff adds a table.
func (tc *TableController) Create(c *gin.Context) {
	var in services.CreateTableInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Create(currentActor(c), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// Update -> staff patches number, capacity, location or status.
func (tc *TableController) Update(c *gin.Context) {
	id, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	var in services.UpdateTableInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Update(currentActor(c), id, in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// Delete -> blocked while reservation/order history exists.
func (tc *TableController) Delete(c *gin.Context) {
	id, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	if err := tc.Tables.Delete(currentActor(c), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", nil)
}
