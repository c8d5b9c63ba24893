package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tags de motivo gravadas em StockMovement.Reason.
const (
	ReasonEntradaFornecedor = "entrada_fornecedor"
	ReasonVenda             = "venda"
	ReasonAjustePrefix      = "ajuste_"
)

// Códigos de motivo aceitos em ajustes manuais (Reason = "ajuste_<código>").
const (
	AjusteErroContagem = "erro_contagem"
	AjusteAvaria       = "avaria"
	AjusteBonificacao  = "bonificacao"
	AjustePerda        = "perda"
	AjusteOutros       = "outros"
)

// Tipos derivados de movimento, para exibição no Kardex.
const (
	MovementKindEntrada = "entrada"
	MovementKindSaida   = "saida"
	MovementKindAjuste  = "ajuste"
	MovementKindVenda   = "venda"
)

// StockMovement é um lançamento imutável do livro de estoque (append-only).
// Invariante de replay: para um mesmo produto, em ordem cronológica,
// NewStock(n) == NewStock(n-1) + Quantity(n). Movimentos nunca são editados;
// estornos são sempre novos ajustes compensatórios.
type StockMovement struct {
	ID          string
	CompanyID   string
	ProductID   string
	Quantity    decimal.Decimal // delta com sinal
	NewStock    decimal.Decimal // estoque resultante após aplicar o delta
	Reason      string          // entrada_fornecedor, venda, ajuste_<código>
	Operator    string          // nome de quem operou (campo estruturado)
	Notes       string
	SaleID      *string // referência à venda de origem (só para Reason venda)
	PerformedBy *string // user id de quem executou, se autenticado
	CreatedAt   time.Time
}

// Kind deriva o tipo de movimento a partir da tag de motivo, por prefixo;
// para motivos livres (dados legados) decide pelo sinal da quantidade.
func (m *StockMovement) Kind() string {
	reason := strings.ToLower(m.Reason)
	switch {
	case strings.Contains(reason, "venda"):
		return MovementKindVenda
	case strings.Contains(reason, "ajuste"):
		return MovementKindAjuste
	case strings.Contains(reason, "entrada"):
		return MovementKindEntrada
	case strings.Contains(reason, "saida"):
		return MovementKindSaida
	}
	if m.Quantity.IsNegative() {
		return MovementKindSaida
	}
	return MovementKindEntrada
}

// PreviousStock devolve o estoque anterior ao movimento (NewStock - Quantity).
func (m *StockMovement) PreviousStock() decimal.Decimal {
	return m.NewStock.Sub(m.Quantity)
}

// ValidAdjustmentCode informa se o código pertence ao conjunto fixo de ajustes.
func ValidAdjustmentCode(code string) bool {
	switch code {
	case AjusteErroContagem, AjusteAvaria, AjusteBonificacao, AjustePerda, AjusteOutros:
		return true
	}
	return false
}
