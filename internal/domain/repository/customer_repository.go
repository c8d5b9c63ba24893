package repository

import "github.com/gestorpro/gestor-api/internal/domain/entity"

// CustomerRepository porta de persistência para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
