package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, product_id, quantity, new_stock, reason, operator, notes, sale_id, performed_by, created_at`

// StockMovementRepo implementação de StockMovementRepository sobre PostgreSQL
// (usável com pool ou tx). O log é append-only: não existe UPDATE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository constrói o adaptador de movimentos. Passar pool ou tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create insere um movimento no log.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.ProductID, m.Quantity, m.NewStock,
		m.Reason, m.Operator, m.Notes, m.SaleID, m.PerformedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID busca um movimento por id.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista os movimentos de um produto, mais recentes primeiro.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByCompany lista os movimentos da empresa inteira, mais recentes primeiro.
func (r *StockMovementRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// Delete remove um movimento (correção de auditoria restrita a admin).
func (r *StockMovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) list(query, key string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, key, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.Quantity, &m.NewStock,
		&m.Reason, &m.Operator, &m.Notes, &m.SaleID, &m.PerformedBy, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
