package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// ProductRepository porta de persistência para produtos.
// GetForUpdate bloqueia a linha do produto (SELECT FOR UPDATE) e só pode ser
// usado com repositório atado a uma transação; serializa escritores
// concorrentes do livro de estoque.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock decimal.Decimal) error
	UpdateCost(productID string, cost decimal.Decimal) error
	CountLowStock(companyID string) (int, error)
}
