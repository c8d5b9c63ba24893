package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.FinancialEntryRepository = (*FinancialEntryRepo)(nil)

const financialColumns = `id, company_id, type, description, total_amount, paid_amount, due_date, status, entity_name, sale_id, created_at, updated_at`

// FinancialEntryRepo implementação de FinancialEntryRepository sobre
// PostgreSQL. Só o status calculado (pending/partial/paid) é armazenado;
// vencido é derivado na leitura pelo caso de uso.
type FinancialEntryRepo struct {
	q Querier
}

// NewFinancialEntryRepository constrói o adaptador financeiro. Passar pool ou tx.
func NewFinancialEntryRepository(q Querier) *FinancialEntryRepo {
	return &FinancialEntryRepo{q: q}
}

// Create insere um lançamento.
func (r *FinancialEntryRepo) Create(entry *entity.FinancialEntry) error {
	query := `
		INSERT INTO financial_entries (` + financialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CompanyID, entry.Type, entry.Description,
		entry.TotalAmount, entry.PaidAmount, entry.DueDate, entry.Status,
		entry.EntityName, entry.SaleID, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert financial entry: %w", err)
	}
	return nil
}

// GetByID busca um lançamento por id.
func (r *FinancialEntryRepo) GetByID(id string) (*entity.FinancialEntry, error) {
	query := `SELECT ` + financialColumns + ` FROM financial_entries WHERE id = $1`
	var e entity.FinancialEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CompanyID, &e.Type, &e.Description,
		&e.TotalAmount, &e.PaidAmount, &e.DueDate, &e.Status,
		&e.EntityName, &e.SaleID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get financial entry: %w", err)
	}
	return &e, nil
}

// ListByCompany lista os lançamentos da empresa, filtrando por tipo quando
// entryType não é vazio, com vencimento mais próximo primeiro.
func (r *FinancialEntryRepo) ListByCompany(companyID, entryType string, limit, offset int) ([]*entity.FinancialEntry, error) {
	query := `
		SELECT ` + financialColumns + `
		FROM financial_entries
		WHERE company_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY due_date ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, entryType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list financial entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialEntry
	for rows.Next() {
		var e entity.FinancialEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Type, &e.Description,
			&e.TotalAmount, &e.PaidAmount, &e.DueDate, &e.Status,
			&e.EntityName, &e.SaleID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan financial entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update grava o novo estado do lançamento (abatimentos).
func (r *FinancialEntryRepo) Update(entry *entity.FinancialEntry) error {
	query := `
		UPDATE financial_entries
		SET description = $2, total_amount = $3, paid_amount = $4, due_date = $5,
		    status = $6, entity_name = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Description, entry.TotalAmount, entry.PaidAmount,
		entry.DueDate, entry.Status, entry.EntityName, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update financial entry: %w", err)
	}
	return nil
}
