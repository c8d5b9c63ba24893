package dto

import "github.com/shopspring/decimal"

// TopProductDTO produto no ranking de vendas do mês.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
}

// DashboardSummaryDTO resumo financeiro e operacional da empresa.
type DashboardSummaryDTO struct {
	TodaySales         decimal.Decimal `json:"today_sales"`
	TodayMargin        decimal.Decimal `json:"today_margin"`
	MonthlySales       decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin      decimal.Decimal `json:"monthly_margin"`
	ReceivablesOpen    decimal.Decimal `json:"receivables_open"`
	ReceivablesOverdue decimal.Decimal `json:"receivables_overdue"`
	LowStockCount      int             `json:"low_stock_count"`
	TopProducts        []TopProductDTO `json:"top_products"`
}
