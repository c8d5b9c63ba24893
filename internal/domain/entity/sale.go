package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pagamento de uma venda.
const (
	SalePaymentCash   = "cash"   // à vista: gera conta a receber já quitada
	SalePaymentCredit = "credit" // fiado: gera conta a receber pendente com vencimento
)

// Sale agrega os itens vendidos em uma operação. Ao completar, a venda gera
// uma saída de estoque por item (movimento venda) e o lançamento financeiro
// correspondente, tudo na mesma transação.
type Sale struct {
	ID            string
	CompanyID     string
	SellerID      string
	SellerName    string
	CustomerID    *string
	CustomerName  string
	PaymentMethod string // cash, credit
	Total         decimal.Decimal
	CommissionPct decimal.Decimal // % do vendedor no momento da venda
	CommissionAmt decimal.Decimal // Total * CommissionPct / 100, congelado na venda
	CreatedAt     time.Time
}

// SaleItem é uma linha da venda.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	SKU       string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
