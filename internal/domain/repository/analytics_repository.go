package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult resultado cru da consulta de produtos mais vendidos.
type TopProductResult struct {
	ProductID    string
	SKU          string
	Name         string
	UnitsSold    decimal.Decimal
	GrossRevenue decimal.Decimal
}

// ReceivablesResult totais de contas a receber em aberto.
type ReceivablesResult struct {
	OpenTotal    decimal.Decimal // pending + partial (saldo restante)
	OverdueTotal decimal.Decimal // parcela do OpenTotal com vencimento no passado
}

// AnalyticsRepository define as consultas read-only do dashboard.
// As implementações não modificam dados.
type AnalyticsRepository interface {
	// GetSalesMetrics devolve receita bruta e custo (COGS) das vendas da
	// empresa no período. COALESCE garante zero quando não há vendas.
	GetSalesMetrics(ctx context.Context, companyID string, startDate, endDate time.Time) (revenue, cost decimal.Decimal, err error)

	// GetTopProducts devolve os `limit` produtos com maior receita no período.
	GetTopProducts(ctx context.Context, companyID string, startDate, endDate time.Time, limit int) ([]TopProductResult, error)

	// GetReceivables devolve os totais em aberto e vencidos em `now`.
	GetReceivables(ctx context.Context, companyID string, now time.Time) (*ReceivablesResult, error)
}
