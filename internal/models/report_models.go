package models

// DashboardSummary aggregates the headline figures shown on the dashboard.
type DashboardSummary struct {
	InventoryItemCount int             `json:"inventory_item_count"`
	OutOfStockCount    int             `json:"out_of_stock_count"`
	LowStockItems      []InventoryItem `json:"low_stock_items"`
	OpenOrderCount     int             `json:"open_order_count"`
	QuotationCount     int             `json:"quotation_count"`
	MonthIncomeTotal   int64           `json:"month_income_total"`
	MonthExpenseTotal  int64           `json:"month_expense_total"`
	MonthNetResult     int64           `json:"month_net_result"`
}
