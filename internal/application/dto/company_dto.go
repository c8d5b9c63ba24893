package dto

import "time"

// CompanyResponse saída de uma empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateCompanyRequest entrada para atualizar dados cadastrais da empresa.
type UpdateCompanyRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=200"`
	TaxID *string `json:"tax_id"`
	Phone *string `json:"phone"`
	Email *string `json:"email" validate:"omitempty,email"`
}
