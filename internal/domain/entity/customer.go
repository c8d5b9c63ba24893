package entity

import "time"

// Status de cliente.
const (
	CustomerAtivo   = "ativo"
	CustomerInativo = "inativo"
)

// Customer representa um cliente da empresa.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	Document  string // CPF/CNPJ, opcional; validado quando presente
	Phone     string
	Address   string
	City      string
	Status    string // ativo, inativo
	CreatedAt time.Time
	UpdatedAt time.Time
}
