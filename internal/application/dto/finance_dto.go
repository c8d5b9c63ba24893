package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFinancialEntryRequest lançamento financeiro avulso.
type CreateFinancialEntryRequest struct {
	Type        string          `json:"type" validate:"required,oneof=receivable payable"`
	Description string          `json:"description" validate:"required,min=2"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	EntityName  string          `json:"entity_name"`
}

// RegisterPaymentRequest abatimento de um lançamento.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// FinancialEntryResponse saída de um lançamento. Overdue é derivado na
// leitura (status armazenado não quitado + vencimento no passado).
type FinancialEntryResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	DueDate     time.Time       `json:"due_date"`
	Status      string          `json:"status"`
	Overdue     bool            `json:"overdue"`
	EntityName  string          `json:"entity_name,omitempty"`
	SaleID      *string         `json:"sale_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
