// Package pdf gera o comprovante de venda em PDF com Maroto v2.
//
// Layout da página A4:
//
//	┌──────────────────────────────────────────────────────────┐
//	│  HEADER: Nome da empresa + CNPJ  │  Nº venda + Data       │
//	│  ──────────────────────────────────────────────────────  │
//	│  CLIENTE: Nome  |  VENDEDOR: Nome  |  Pagamento           │
//	│  ──────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Produto | Preço Unit. | Total              │
//	│  ──────────────────────────────────────────────────────  │
//	│  TOTAL DA VENDA                                           │
//	└──────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gestorpro/gestor-api/internal/application/sales"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 61}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator constrói o gerador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Generate monta o comprovante e devolve seus bytes.
func (g *ReceiptGenerator) Generate(company *entity.Company, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de Venda", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar comprovante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: nome da empresa + CNPJ (esq) e nº da venda + data (dir).
func headerRow(sale *entity.Sale, company *entity.Company) core.Row {
	data := sale.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ/CPF: "+nonEmpty(company.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Venda "+shortID(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow: cliente, vendedor e forma de pagamento.
func partiesRow(sale *entity.Sale) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DADOS DA VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+sale.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Vendedor(a): %s   |   Pagamento: %s",
				sale.SellerName,
				paymentLabel(sale.PaymentMethod),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Produto", 6, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableItemRows: uma linha por item da venda.
func tableItemRows(items []*entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"R$ "+it.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"R$ "+it.LineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total da venda alinhado à direita.
func totalRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL DA VENDA:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New("R$ "+sale.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Este comprovante não substitui documento fiscal. "+
				"Guarde-o para eventuais trocas e consultas.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2, Align: align.Center},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID mostra só o primeiro bloco do UUID no comprovante.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

func paymentLabel(method string) string {
	switch method {
	case entity.SalePaymentCash:
		return "À vista"
	case entity.SalePaymentCredit:
		return "A prazo"
	default:
		return method
	}
}
