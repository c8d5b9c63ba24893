package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

func TestKardex_OrdemEClassificacao(t *testing.T) {
	uc, _, _ := newLedger(produto("p1", 10))
	ctx := context.Background()

	_, err := uc.RecordEntry(ctx, ledger.EntryInput{
		CompanyID: "co-1", ProductID: "p1", Quantity: dec(5), Operator: "Maria",
	})
	require.NoError(t, err)
	_, err = uc.RecordAdjustment(ctx, ledger.AdjustmentInput{
		CompanyID: "co-1", ProductID: "p1", Quantity: dec(-3),
		ReasonCode: entity.AjustePerda, Operator: "João", Notes: "quebra na prateleira",
	})
	require.NoError(t, err)

	entries, err := uc.Kardex("co-1", "p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Mais recente primeiro: o ajuste vem antes da entrada.
	assert.Equal(t, entity.MovementKindAjuste, entries[0].Kind)
	assert.Equal(t, "João", entries[0].Operator)
	assert.Equal(t, "quebra na prateleira", entries[0].Notes)
	assert.True(t, entries[0].PreviousStock.Equal(dec(15)))

	assert.Equal(t, entity.MovementKindEntrada, entries[1].Kind)
	assert.True(t, entries[1].PreviousStock.Equal(dec(10)))
	assert.True(t, entries[1].Movement.NewStock.Equal(dec(15)))
}

func TestKardex_ProdutoDeOutraEmpresa(t *testing.T) {
	uc, _, _ := newLedger(produto("p1", 10))

	_, err := uc.Kardex("co-2", "p1", 0, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestKardex_Paginacao(t *testing.T) {
	uc, _, _ := newLedger(produto("p1", 0))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.RecordEntry(ctx, ledger.EntryInput{
			CompanyID: "co-1", ProductID: "p1", Quantity: dec(1), Operator: "Maria",
		})
		require.NoError(t, err)
	}

	page1, err := uc.Kardex("co-1", "p1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page2, err := uc.Kardex("co-1", "p1", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// Páginas consecutivas continuam o fold de trás para frente sem sobreposição.
	assert.True(t, page1[1].PreviousStock.Equal(page2[0].Movement.NewStock))
	assert.NotEqual(t, page1[0].Movement.ID, page2[0].Movement.ID)
}

func TestClampPage_NormalizaLimiteEOffset(t *testing.T) {
	cases := []struct {
		nome               string
		limit, offset      int
		wantLimit, wantOfs int
	}{
		{"padrões", 0, 0, 50, 0},
		{"limite negativo vira padrão", -1, 0, 50, 0},
		{"teto de 200", 1000, 0, 200, 0},
		{"offset negativo zera", 20, -5, 20, 0},
		{"valores válidos passam intactos", 100, 40, 100, 40},
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			limit, offset := ledger.ClampPage(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOfs, offset)
		})
	}
}

func TestAnnotate_FormatoLegadoEmpacotado(t *testing.T) {
	m := &entity.StockMovement{
		Quantity: dec(5),
		NewStock: dec(15),
		Reason:   "entrada_fornecedor | Operador: Maria | Notas: lote 42",
	}

	e := ledger.Annotate(m)
	assert.Equal(t, entity.MovementKindEntrada, e.Kind)
	assert.Equal(t, "Maria", e.Operator)
	assert.Equal(t, "lote 42", e.Notes)
	assert.True(t, e.PreviousStock.Equal(dec(10)))
}

func TestAnnotate_CamposEstruturadosTemPrecedencia(t *testing.T) {
	m := &entity.StockMovement{
		Quantity: dec(-1),
		NewStock: dec(9),
		Reason:   "ajuste_perda | Operador: Antigo",
		Operator: "Atual",
		Notes:    "contagem mensal",
	}

	e := ledger.Annotate(m)
	assert.Equal(t, "Atual", e.Operator)
	assert.Equal(t, "contagem mensal", e.Notes)
	assert.Equal(t, entity.MovementKindAjuste, e.Kind)
}

func TestAnnotate_ClassificacaoPorMotivoESinal(t *testing.T) {
	cases := []struct {
		nome     string
		reason   string
		quantity decimal.Decimal
		kind     string
	}{
		{"venda", entity.ReasonVenda, dec(-2), entity.MovementKindVenda},
		{"ajuste positivo", "ajuste_bonificacao", dec(3), entity.MovementKindAjuste},
		{"entrada", entity.ReasonEntradaFornecedor, dec(10), entity.MovementKindEntrada},
		{"motivo livre positivo", "carga inicial", dec(7), entity.MovementKindEntrada},
		{"motivo livre negativo", "descarte", dec(-7), entity.MovementKindSaida},
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			m := &entity.StockMovement{Reason: tc.reason, Quantity: tc.quantity, NewStock: dec(0)}
			assert.Equal(t, tc.kind, ledger.Annotate(m).Kind)
		})
	}
}
