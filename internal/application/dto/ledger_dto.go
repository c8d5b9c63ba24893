package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryRequest body para POST /api/stock/entries.
type StockEntryRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Operator  string           `json:"operator" validate:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes     string           `json:"notes"`
}

// StockAdjustmentRequest body para POST /api/stock/adjustments.
// Quantity é o delta com sinal; ReasonCode pertence ao conjunto fixo
// (erro_contagem, avaria, bonificacao, perda, outros).
type StockAdjustmentRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
	ReasonCode string          `json:"reason_code" validate:"required"`
	Operator   string          `json:"operator" validate:"required"`
	Notes      string          `json:"notes"`
}

// MovementResponse saída de um movimento do livro de estoque.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	NewStock  decimal.Decimal `json:"new_stock"`
	Reason    string          `json:"reason"`
	Operator  string          `json:"operator,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	SaleID    *string         `json:"sale_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// KardexEntryResponse movimento anotado para exibição no Kardex.
type KardexEntryResponse struct {
	MovementResponse
	Kind          string          `json:"kind"` // entrada, saida, ajuste, venda
	PreviousStock decimal.Decimal `json:"previous_stock"`
}

// KardexResponse página do Kardex de um produto (ou da empresa inteira).
type KardexResponse struct {
	Items []KardexEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
