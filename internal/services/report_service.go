package services

import (
	"fmt"
	"time"

	"gestion_backend/internal/models"
	"gestion_backend/internal/repositories"
)

const (
	lowStockThreshold = 5
	lowStockLimit     = 10
)

// ReportService produces aggregated figures for the dashboard.
type ReportService interface {
	GetDashboardSummary() (*models.DashboardSummary, error)
}

type reportService struct {
	inventoryRepo repositories.InventoryRepository
	orderRepo     repositories.OrderRepository
	ledgerRepo    repositories.LedgerRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(ir repositories.InventoryRepository, or repositories.OrderRepository, lr repositories.LedgerRepository) ReportService {
	return &reportService{inventoryRepo: ir, orderRepo: or, ledgerRepo: lr}
}

func (s *reportService) GetDashboardSummary() (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}

	total, outOfStock, err := s.inventoryRepo.CountItems()
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory items: %w", err)
	}
	summary.InventoryItemCount = total
	summary.OutOfStockCount = outOfStock

	lowStock, err := s.inventoryRepo.GetLowStockItems(lowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch low stock items: %w", err)
	}
	summary.LowStockItems = lowStock

	statusCounts, err := s.orderRepo.CountByStatus(StatusReceived, StatusInProgress, StatusQuotationSent)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	summary.OpenOrderCount = statusCounts[StatusReceived] + statusCounts[StatusInProgress]
	summary.QuotationCount = statusCounts[StatusQuotationSent]

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	sums, err := s.ledgerRepo.SumByType(monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	summary.MonthIncomeTotal = sums[models.LedgerIncome]
	summary.MonthExpenseTotal = sums[models.LedgerExpense]
	summary.MonthNetResult = summary.MonthIncomeTotal - summary.MonthExpenseTotal

	return summary, nil
}
