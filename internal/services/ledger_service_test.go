package services

import (
	"testing"
	"time"

	"gestion_backend/internal/models"
	"gestion_backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerServiceForTest() (LedgerService, *fakeLedgerRepo) {
	ledgerRepo := newFakeLedgerRepo()
	svc := NewLedgerService(ledgerRepo, fakeTxManager{}, pricing.NewCalculator(0.19))
	return svc, ledgerRepo
}

func TestCreateIncomeEntryDerivesNetIvaSplit(t *testing.T) {
	svc, _ := newLedgerServiceForTest()

	entry, err := svc.CreateEntry(SaveLedgerEntryRequest{
		EntryType:   models.LedgerIncome,
		Description: "Venta poleras agosto",
		Amount:      1000000,
	})
	require.NoError(t, err)

	require.NotNil(t, entry.NetAmount)
	require.NotNil(t, entry.IvaAmount)
	assert.Equal(t, int64(840336), *entry.NetAmount)
	assert.Equal(t, int64(159664), *entry.IvaAmount)
	assert.Equal(t, int64(1000000), *entry.NetAmount+*entry.IvaAmount)
}

func TestCreateExpenseEntryHasNoSplit(t *testing.T) {
	svc, _ := newLedgerServiceForTest()

	entry, err := svc.CreateEntry(SaveLedgerEntryRequest{
		EntryType:   models.LedgerExpense,
		Description: "Compra de telas",
		Amount:      250000,
	})
	require.NoError(t, err)

	assert.Nil(t, entry.NetAmount)
	assert.Nil(t, entry.IvaAmount)
	assert.Equal(t, int64(250000), entry.Amount)
}

func TestCreateEntryRejectsUnknownType(t *testing.T) {
	svc, _ := newLedgerServiceForTest()

	_, err := svc.CreateEntry(SaveLedgerEntryRequest{
		EntryType:   "transfer",
		Description: "Traspaso",
		Amount:      1000,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateEntryRecomputesSplit(t *testing.T) {
	svc, _ := newLedgerServiceForTest()

	entry, err := svc.CreateEntry(SaveLedgerEntryRequest{
		EntryType:   models.LedgerIncome,
		Description: "Venta",
		Amount:      11900,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEntry(entry.ID, SaveLedgerEntryRequest{
		EntryType:   models.LedgerIncome,
		Description: "Venta corregida",
		Amount:      23800,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.NetAmount)
	assert.Equal(t, int64(20000), *updated.NetAmount)
	assert.Equal(t, int64(3800), *updated.IvaAmount)
}

func TestUpdateEntryKeepsDateWhenOmitted(t *testing.T) {
	svc, _ := newLedgerServiceForTest()

	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	entry, err := svc.CreateEntry(SaveLedgerEntryRequest{
		EntryType:   models.LedgerExpense,
		EntryDate:   &date,
		Description: "Arriendo taller",
		Amount:      300000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEntry(entry.ID, SaveLedgerEntryRequest{
		EntryType:   models.LedgerExpense,
		Description: "Arriendo taller agosto",
		Amount:      320000,
	})
	require.NoError(t, err)

	assert.True(t, updated.EntryDate.Equal(date))
}

func TestDeleteEntryNotFound(t *testing.T) {
	svc, _ := newLedgerServiceForTest()

	err := svc.DeleteEntry(404)
	assert.ErrorIs(t, err, ErrLedgerEntryNotFound)
}
