package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto. Estoque inicial e custo
// entram aqui uma única vez; depois só mudam pelo livro de estoque.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	SoldByBox    bool            `json:"sold_by_box"`
	SoldByWeight bool            `json:"sold_by_weight"`
}

// UpdateProductRequest entrada para atualizar um produto (sem estoque e custo).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	MinStock     *decimal.Decimal `json:"min_stock"`
	SoldByBox    *bool            `json:"sold_by_box"`
	SoldByWeight *bool            `json:"sold_by_weight"`
	Active       *bool            `json:"active"`
}

// ProductResponse saída de um produto, com os derivados de leitura
// (estoque baixo e margem) recalculados a cada resposta.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	LowStock     bool            `json:"low_stock"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
	SoldByBox    bool            `json:"sold_by_box"`
	SoldByWeight bool            `json:"sold_by_weight"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
