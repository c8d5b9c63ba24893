// Package analytics contém os casos de uso de relatórios do dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // produtos no ranking do dashboard

// DashboardUseCase monta o resumo financeiro e operacional da empresa.
//
// Fonte de dados: AnalyticsRepository (consultas read-only) mais a contagem
// de estoque baixo do ProductRepository. Não toca nas tabelas diretamente.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo}
}

// GetSummary monta o DashboardSummaryDTO para a empresa.
//
// Cinco consultas em paralelo:
//  1. GetSalesMetrics(hoje)  → TodaySales + TodayMargin
//  2. GetSalesMetrics(mês)   → MonthlySales + MonthlyMargin
//  3. GetTopProducts(mês)    → TopProducts
//  4. GetReceivables(agora)  → ReceivablesOpen + ReceivablesOverdue
//  5. CountLowStock          → LowStockCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := todayEnd

	type metricsResult struct {
		revenue decimal.Decimal
		cost    decimal.Decimal
		err     error
	}
	type topResult struct {
		products []repository.TopProductResult
		err      error
	}
	type receivablesResult struct {
		totals *repository.ReceivablesResult
		err    error
	}
	type lowStockResult struct {
		count int
		err   error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	recvCh := make(chan receivablesResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		rev, cost, err := uc.analyticsRepo.GetSalesMetrics(ctx, companyID, todayStart, todayEnd)
		todayCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		rev, cost, err := uc.analyticsRepo.GetSalesMetrics(ctx, companyID, monthStart, monthEnd)
		monthCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		products, err := uc.analyticsRepo.GetTopProducts(ctx, companyID, monthStart, monthEnd, dashboardTopProducts)
		topCh <- topResult{products, err}
	}()
	go func() {
		totals, err := uc.analyticsRepo.GetReceivables(ctx, companyID, now)
		recvCh <- receivablesResult{totals, err}
	}()
	go func() {
		count, err := uc.productRepo.CountLowStock(companyID)
		lowCh <- lowStockResult{count, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	recv := <-recvCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("métricas do dia: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("métricas do mês: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("ranking de produtos: %w", top.err)
	}
	if recv.err != nil {
		return nil, fmt.Errorf("contas a receber: %w", recv.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("contagem de estoque baixo: %w", low.err)
	}

	topProducts := make([]dto.TopProductDTO, 0, len(top.products))
	for _, p := range top.products {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:    p.ProductID,
			SKU:          p.SKU,
			Name:         p.Name,
			UnitsSold:    p.UnitsSold,
			GrossRevenue: p.GrossRevenue,
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:         today.revenue,
		TodayMargin:        today.revenue.Sub(today.cost),
		MonthlySales:       month.revenue,
		MonthlyMargin:      month.revenue.Sub(month.cost),
		ReceivablesOpen:    recv.totals.OpenTotal,
		ReceivablesOverdue: recv.totals.OverdueTotal,
		LowStockCount:      low.count,
		TopProducts:        topProducts,
	}, nil
}
