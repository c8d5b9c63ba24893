package repository

import "github.com/gestorpro/gestor-api/internal/domain/entity"

// CompanyRepository porta de persistência para empresas.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByTaxID(taxID string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
}
