package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo (SKU único por empresa).
// Stock e CostPrice não são editáveis via atualização de produto: mudam apenas
// pelas operações do livro de estoque (entrada, ajuste, venda).
type Product struct {
	ID           string
	CompanyID    string
	SKU          string
	Name         string
	Category     string
	CostPrice    decimal.Decimal
	SalePrice    decimal.Decimal
	Stock        decimal.Decimal // pode ser fracionário (venda por peso)
	MinStock     decimal.Decimal
	SoldByBox    bool
	SoldByWeight bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock informa se o produto está abaixo do estoque mínimo.
// Derivado a cada leitura (limite estrito: stock < minStock), nunca armazenado.
func (p *Product) LowStock() bool {
	return p.Stock.LessThan(p.MinStock)
}

// Margin devolve a margem percentual sobre o preço de venda (0 se preço zero).
func (p *Product) Margin() decimal.Decimal {
	if !p.SalePrice.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice).Div(p.SalePrice).Mul(decimal.NewFromInt(100)).Round(2)
}
