package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento financeiro.
const (
	FinancialReceivable = "receivable"
	FinancialPayable    = "payable"
)

// Status armazenados de um lançamento. "overdue" nunca é armazenado:
// é derivado na leitura comparando DueDate com o relógio (ver IsOverdue).
const (
	FinancialPending = "pending"
	FinancialPartial = "partial"
	FinancialPaid    = "paid"
)

// FinancialEntry representa uma conta a receber ou a pagar.
// Invariantes: PaidAmount <= TotalAmount; o status armazenado só avança
// pending → partial → paid.
type FinancialEntry struct {
	ID          string
	CompanyID   string
	Type        string // receivable, payable
	Description string
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	DueDate     time.Time
	Status      string  // pending, partial, paid
	EntityName  string  // cliente ou fornecedor, texto livre
	SaleID      *string // venda de origem, quando houver
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue informa se o lançamento está vencido em now.
// Estado derivado: status armazenado não quitado + vencimento no passado.
func (e *FinancialEntry) IsOverdue(now time.Time) bool {
	return e.Status != FinancialPaid && e.DueDate.Before(now)
}

// DeriveStatus calcula o status armazenado a partir dos valores pagos.
func (e *FinancialEntry) DeriveStatus() string {
	switch {
	case e.PaidAmount.GreaterThanOrEqual(e.TotalAmount):
		return FinancialPaid
	case e.PaidAmount.GreaterThan(decimal.Zero):
		return FinancialPartial
	}
	return FinancialPending
}
