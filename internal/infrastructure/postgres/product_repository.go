package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, name, category, cost_price, sale_price, stock, min_stock, sold_by_box, sold_by_weight, active, created_at, updated_at`

// ProductRepo implementação de ProductRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um produto novo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.SKU, product.Name, product.Category,
		product.CostPrice, product.SalePrice, product.Stock, product.MinStock,
		product.SoldByBox, product.SoldByWeight, product.Active,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID busca um produto por id.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByCompanyAndSKU busca um produto por empresa e SKU.
func (r *ProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, sku), "get product by sku")
}

// GetForUpdate busca o produto bloqueando a linha (SELECT FOR UPDATE).
// Só faz sentido com repositório atado a transação: serializa os escritores
// concorrentes do livro de estoque no mesmo produto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// ListByCompany lista produtos da empresa com paginação.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE company_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update atualiza os dados cadastrais. Stock e cost_price ficam de fora:
// mudam só por UpdateStock/UpdateCost dentro das operações do livro.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, sale_price = $4, min_stock = $5,
		    sold_by_box = $6, sold_by_weight = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.SalePrice, product.MinStock,
		product.SoldByBox, product.SoldByWeight, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock grava o novo estoque (chamado só pelas operações do livro).
func (r *ProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// UpdateCost grava o novo custo (entrada de fornecedor com custo informado).
func (r *ProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET cost_price = $2, updated_at = now() WHERE id = $1`,
		productID, cost,
	)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// CountLowStock conta os produtos ativos abaixo do mínimo (limite estrito <).
func (r *ProductRepo) CountLowStock(companyID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE company_id = $1 AND active AND stock < min_stock`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Category,
		&p.CostPrice, &p.SalePrice, &p.Stock, &p.MinStock,
		&p.SoldByBox, &p.SoldByWeight, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
