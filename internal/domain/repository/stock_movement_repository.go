package repository

import "github.com/gestorpro/gestor-api/internal/domain/entity"

// StockMovementRepository porta de persistência para o livro de estoque.
// O log é append-only: não existe Update. Delete é correção de auditoria
// restrita a admin e não toca no estoque do produto.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.StockMovement, error)
	Delete(id string) error
}
