package entity

import "time"

// Company representa uma empresa/tenant do sistema. Toda entidade de negócio
// pertence a exatamente uma Company; o isolamento é garantido filtrando por
// CompanyID em todas as consultas.
type Company struct {
	ID        string
	Name      string
	TaxID     string // CNPJ ou CPF do titular (com ou sem pontuação)
	Phone     string
	Email     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
