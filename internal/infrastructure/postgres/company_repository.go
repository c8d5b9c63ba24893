package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, tax_id, phone, email, status, created_at, updated_at`

// CompanyRepo implementação de CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador de empresas. Passar pool ou tx.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste uma empresa nova.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.TaxID, company.Phone, company.Email,
		company.Status, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID busca uma empresa por id.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get company")
}

// GetByTaxID busca uma empresa pelo CNPJ/CPF.
func (r *CompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE tax_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, taxID), "get company by tax id")
}

// List lista as empresas (visão do super-admin).
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update atualiza os dados cadastrais.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, tax_id = $3, phone = $4, email = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.TaxID, company.Phone, company.Email,
		company.Status, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) scanOne(row pgx.Row, op string) (*entity.Company, error) {
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
