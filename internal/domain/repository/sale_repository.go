package repository

import "github.com/gestorpro/gestor-api/internal/domain/entity"

// SaleRepository porta de persistência para vendas e seus itens.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error)
}
