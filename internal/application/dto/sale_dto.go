package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleItemRequest linha do pedido de venda. UnitPrice ausente usa o
// preço cadastrado do produto; zero explícito vende a linha de graça.
type CreateSaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID    *string                 `json:"customer_id,omitempty"`
	PaymentMethod string                  `json:"payment_method" validate:"required,oneof=cash credit"`
	DueDate       *time.Time              `json:"due_date,omitempty"`
	Items         []CreateSaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse linha de uma venda.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse saída de uma venda.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	SellerID      string             `json:"seller_id"`
	SellerName    string             `json:"seller_name"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Total         decimal.Decimal    `json:"total"`
	CommissionPct decimal.Decimal    `json:"commission_pct"`
	CommissionAmt decimal.Decimal    `json:"commission_amt"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de vendas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
