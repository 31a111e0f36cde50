package handlers

import (
	"errors"
	"net/http"

	"gestion_backend/internal/models"
	"gestion_backend/internal/services"
	"gestion_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LedgerHandler holds the ledger service.
type LedgerHandler struct {
	ledgerService services.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ls services.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

// CreateLedgerEntry handles the creation of an income or expense record.
func (h *LedgerHandler) CreateLedgerEntry(c *gin.Context) {
	var req services.SaveLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.ledgerService.CreateEntry(req)
	if err != nil {
		utils.LogError(err, "CreateLedgerEntry: Error from ledgerService.CreateEntry")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create ledger entry.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetLedgerEntries handles fetching ledger entries with filters.
func (h *LedgerHandler) GetLedgerEntries(c *gin.Context) {
	var filters models.LedgerFilters

	if entryType := c.Query("entry_type"); entryType != "" {
		filters.EntryType = &entryType
	}
	if from := c.Query("from"); from != "" {
		filters.From = &from
	}
	if to := c.Query("to"); to != "" {
		filters.To = &to
	}
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	filters.Page = page
	filters.PageSize = pageSize

	entries, totalCount, err := h.ledgerService.GetEntries(filters)
	if err != nil {
		utils.LogError(err, "GetLedgerEntries: Error from ledgerService.GetEntries")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch ledger entries.", "Internal error"))
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	paginatedResponse(c, entries, totalCount, filters.Page, filters.PageSize)
}

// GetLedgerEntryByID handles fetching a single ledger entry.
func (h *LedgerHandler) GetLedgerEntryByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.ledgerService.GetEntryByID(id)
	if err != nil {
		if errors.Is(err, services.ErrLedgerEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ledger entry not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetLedgerEntryByID: Error from ledgerService.GetEntryByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch ledger entry.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpdateLedgerEntry handles updating a ledger entry.
func (h *LedgerHandler) UpdateLedgerEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SaveLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	entry, err := h.ledgerService.UpdateEntry(id, req)
	if err != nil {
		utils.LogError(err, "UpdateLedgerEntry: Error from ledgerService.UpdateEntry")
		switch {
		case errors.Is(err, services.ErrLedgerEntryNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ledger entry not found to update.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update ledger entry.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteLedgerEntry handles deleting a ledger entry.
func (h *LedgerHandler) DeleteLedgerEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteEntry(id); err != nil {
		if errors.Is(err, services.ErrLedgerEntryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Ledger entry not found to delete.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteLedgerEntry: Error from ledgerService.DeleteEntry")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete ledger entry.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ledger entry deleted successfully"})
}
