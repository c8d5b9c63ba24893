package dto

import "time"

// CreateCustomerRequest entrada para criar um cliente.
type CreateCustomerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// UpdateCustomerRequest entrada para atualizar um cliente.
type UpdateCustomerRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Document *string `json:"document"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Status   *string `json:"status" validate:"omitempty,oneof=ativo inativo"`
}

// CustomerResponse saída de um cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
