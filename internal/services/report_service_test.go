package services

import (
	"testing"
	"time"

	"gestion_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardSummary(t *testing.T) {
	invRepo := newFakeInventoryRepo(
		models.InventoryItem{Name: "Tela", Quantity: 20},
		models.InventoryItem{Name: "Hilo", Quantity: 2},
		models.InventoryItem{Name: "Botones", Quantity: 0},
	)

	orderRepo := newFakeOrderRepo()
	for _, status := range []string{StatusReceived, StatusReceived, StatusInProgress, StatusQuotationSent, StatusCompleted, StatusCancelled} {
		_, err := orderRepo.CreateOrder(nil, &models.Order{Status: status})
		require.NoError(t, err)
	}

	ledgerRepo := newFakeLedgerRepo()
	thisMonth := time.Now()
	monthStart := time.Date(thisMonth.Year(), thisMonth.Month(), 1, 0, 0, 0, 0, thisMonth.Location())
	lastMonth := monthStart.Add(-time.Hour)
	for _, e := range []models.LedgerEntry{
		{EntryType: models.LedgerIncome, EntryDate: thisMonth, Description: "Venta", Amount: 500000},
		{EntryType: models.LedgerIncome, EntryDate: thisMonth, Description: "Venta", Amount: 100000},
		{EntryType: models.LedgerExpense, EntryDate: thisMonth, Description: "Telas", Amount: 150000},
		{EntryType: models.LedgerIncome, EntryDate: lastMonth, Description: "Venta antigua", Amount: 999999},
	} {
		entry := e
		_, err := ledgerRepo.CreateEntry(nil, &entry)
		require.NoError(t, err)
	}

	svc := NewReportService(invRepo, orderRepo, ledgerRepo)
	summary, err := svc.GetDashboardSummary()
	require.NoError(t, err)

	assert.Equal(t, 3, summary.InventoryItemCount)
	assert.Equal(t, 1, summary.OutOfStockCount)
	assert.Len(t, summary.LowStockItems, 2)
	assert.Equal(t, 3, summary.OpenOrderCount)
	assert.Equal(t, 1, summary.QuotationCount)
	assert.Equal(t, int64(600000), summary.MonthIncomeTotal)
	assert.Equal(t, int64(150000), summary.MonthExpenseTotal)
	assert.Equal(t, int64(450000), summary.MonthNetResult)
}
