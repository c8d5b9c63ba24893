package repository

import "github.com/gestorpro/gestor-api/internal/domain/entity"

// FinancialEntryRepository porta de persistência para lançamentos financeiros.
type FinancialEntryRepository interface {
	Create(entry *entity.FinancialEntry) error
	GetByID(id string) (*entity.FinancialEntry, error)
	// ListByCompany filtra por tipo quando entryType não é vazio.
	ListByCompany(companyID, entryType string, limit, offset int) ([]*entity.FinancialEntry, error)
	Update(entry *entity.FinancialEntry) error
}
