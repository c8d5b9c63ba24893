package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only do dashboard sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o adaptador de analytics. Passar o pool.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics soma receita bruta e custo (COGS) das vendas no período.
// COALESCE garante zero quando não há vendas.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, companyID string, startDate, endDate time.Time) (revenue, cost decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(si.line_total), 0) AS revenue,
		       COALESCE(SUM(si.quantity * p.cost_price), 0) AS cost
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		JOIN products p ON p.id = si.product_id
		WHERE s.company_id = $1 AND s.created_at BETWEEN $2 AND $3`
	err = r.q.QueryRow(ctx, query, companyID, startDate, endDate).Scan(&revenue, &cost)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sales metrics: %w", err)
	}
	return revenue, cost, nil
}

// GetTopProducts devolve os produtos com maior receita no período.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, companyID string, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT si.product_id, si.sku, si.name,
		       SUM(si.quantity) AS units_sold,
		       SUM(si.line_total) AS gross_revenue
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		WHERE s.company_id = $1 AND s.created_at BETWEEN $2 AND $3
		GROUP BY si.product_id, si.sku, si.name
		ORDER BY gross_revenue DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, companyID, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.UnitsSold, &t.GrossRevenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetReceivables soma o saldo em aberto das contas a receber e a parcela
// vencida. Vencido é derivado aqui pela comparação com now, nunca lido de um
// status armazenado.
func (r *AnalyticsRepo) GetReceivables(ctx context.Context, companyID string, now time.Time) (*repository.ReceivablesResult, error) {
	query := `
		SELECT COALESCE(SUM(total_amount - paid_amount), 0) AS open_total,
		       COALESCE(SUM(CASE WHEN due_date < $3 THEN total_amount - paid_amount ELSE 0 END), 0) AS overdue_total
		FROM financial_entries
		WHERE company_id = $1 AND type = $2 AND status <> 'paid'`
	var result repository.ReceivablesResult
	err := r.q.QueryRow(ctx, query, companyID, entity.FinancialReceivable, now).
		Scan(&result.OpenTotal, &result.OverdueTotal)
	if err != nil {
		return nil, fmt.Errorf("receivables: %w", err)
	}
	return &result, nil
}
