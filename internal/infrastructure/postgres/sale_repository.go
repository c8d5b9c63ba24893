package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, company_id, seller_id, seller_name, customer_id, customer_name, payment_method, total, commission_pct, commission_amt, created_at`

// SaleRepo implementação de SaleRepository sobre PostgreSQL
// (usável com pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas. Passar pool ou tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create insere o cabeçalho da venda.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CompanyID, sale.SellerID, sale.SellerName,
		sale.CustomerID, sale.CustomerName, sale.PaymentMethod,
		sale.Total, sale.CommissionPct, sale.CommissionAmt, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem insere uma linha da venda.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, sku, name, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.SKU, item.Name,
		item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID busca uma venda por id.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CompanyID, &s.SellerID, &s.SellerName,
		&s.CustomerID, &s.CustomerName, &s.PaymentMethod,
		&s.Total, &s.CommissionPct, &s.CommissionAmt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID devolve as linhas da venda.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, sku, name, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.SKU, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany lista as vendas da empresa, mais recentes primeiro.
func (r *SaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.SellerID, &s.SellerName,
			&s.CustomerID, &s.CustomerName, &s.PaymentMethod,
			&s.Total, &s.CommissionPct, &s.CommissionAmt, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
