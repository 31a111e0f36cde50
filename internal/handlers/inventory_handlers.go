package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gestion_backend/internal/models"
	"gestion_backend/internal/services"
	"gestion_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// InventoryHandler holds the inventory service.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// CreateInventoryItem handles the creation of a new inventory item.
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.CreateItem(req)
	if err != nil {
		utils.LogError(err, "CreateInventoryItem: Error from inventoryService.CreateItem")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create inventory item.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetInventoryItems handles fetching inventory items with an optional name filter.
func (h *InventoryHandler) GetInventoryItems(c *gin.Context) {
	var name *string
	if nameStr := c.Query("name"); nameStr != "" {
		name = &nameStr
	}
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	items, totalCount, err := h.inventoryService.GetItems(name, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetInventoryItems: Error from inventoryService.GetItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inventory items.", "Internal error"))
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	paginatedResponse(c, items, totalCount, page, pageSize)
}

// GetInventoryItemByID handles fetching a single inventory item.
func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetItemByID(id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetInventoryItemByID: Error from inventoryService.GetItemByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch inventory item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem handles a full update of an inventory item.
func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	item.ID = id

	updatedItem, err := h.inventoryService.UpdateItem(&item)
	if err != nil {
		utils.LogError(err, "UpdateInventoryItem: Error from inventoryService.UpdateItem")
		switch {
		case errors.Is(err, services.ErrInventoryItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found to update.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update inventory item.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updatedItem)
}

// DeleteInventoryItem handles deleting an inventory item.
func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.DeleteItem(id); err != nil {
		if errors.Is(err, services.ErrInventoryItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found to delete.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteInventoryItem: Error from inventoryService.DeleteItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete inventory item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

// AdjustStock handles a manual signed stock adjustment.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.inventoryService.AdjustStock(id, req, currentUserID(c))
	if err != nil {
		utils.LogError(err, "AdjustStock: Error from inventoryService.AdjustStock")
		switch {
		case errors.Is(err, services.ErrInventoryItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Inventory item not found.", err.Error()))
		case errors.Is(err, services.ErrNegativeStock):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Stock adjustment would drive quantity below zero.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to adjust stock.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// GetStockMovements handles fetching the stock movement audit trail.
func (h *InventoryHandler) GetStockMovements(c *gin.Context) {
	var filters models.MovementFilters

	if itemIDStr := c.Query("inventory_item_id"); itemIDStr != "" {
		itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid inventory_item_id format.", err.Error()))
			return
		}
		filters.InventoryItemID = &itemID
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		filters.MovementType = &movementType
	}
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	filters.Page = page
	filters.PageSize = pageSize

	movements, totalCount, err := h.inventoryService.GetMovements(filters)
	if err != nil {
		utils.LogError(err, "GetStockMovements: Error from inventoryService.GetMovements")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock movements.", "Internal error"))
		return
	}
	if movements == nil {
		movements = []models.StockMovement{}
	}
	paginatedResponse(c, movements, totalCount, filters.Page, filters.PageSize)
}
