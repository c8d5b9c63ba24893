package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// KardexEntry é um movimento anotado para exibição: tipo derivado, estoque
// anterior e operador/notas resolvidos (campos estruturados ou formato legado).
type KardexEntry struct {
	Movement      *entity.StockMovement
	Kind          string // entrada, saida, ajuste, venda
	PreviousStock decimal.Decimal
	Operator      string
	Notes         string
}

// Marcadores do formato legado, em que operador e notas vinham empacotados
// dentro do próprio texto do motivo ("... | Operador: X | Notas: Y").
// Sobrevive apenas como fallback de leitura para dados importados do sistema
// antigo; linhas novas sempre usam as colunas estruturadas.
const (
	legacyOperatorMarker = "Operador: "
	legacyNotesMarker    = "Notas: "
)

// Kardex consulta o histórico de movimentos de um produto (ou da empresa
// inteira quando productID é vazio), ordenado do mais recente para o mais
// antigo. A paginação por limit/offset torna a sequência preguiçosa e
// reiniciável: cada página é uma leitura independente.
func (uc *UseCase) Kardex(companyID, productID string, limit, offset int) ([]KardexEntry, error) {
	limit, offset = ClampPage(limit, offset)

	var (
		movements []*entity.StockMovement
		err       error
	)
	if productID != "" {
		product, perr := uc.productRepo.GetByID(productID)
		if perr != nil {
			return nil, perr
		}
		if product == nil || product.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		movements, err = uc.movRepo.ListByProduct(productID, limit, offset)
	} else {
		movements, err = uc.movRepo.ListByCompany(companyID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]KardexEntry, 0, len(movements))
	for _, m := range movements {
		entries = append(entries, Annotate(m))
	}
	return entries, nil
}

// ClampPage normaliza a paginação do Kardex: limit padrão 50, teto 200,
// offset nunca negativo. É a página efetivamente consultada; quem ecoa a
// paginação na resposta deve ecoar estes valores.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Annotate deriva os campos de exibição de um movimento.
func Annotate(m *entity.StockMovement) KardexEntry {
	operator, notes := m.Operator, m.Notes
	if operator == "" && notes == "" {
		operator, notes = parseLegacyReason(m.Reason)
	}
	return KardexEntry{
		Movement:      m,
		Kind:          m.Kind(),
		PreviousStock: m.PreviousStock(),
		Operator:      operator,
		Notes:         notes,
	}
}

// parseLegacyReason extrai operador e notas do formato legado empacotado.
// Exemplo: "entrada_fornecedor | Operador: Maria | Notas: lote 42".
func parseLegacyReason(reason string) (operator, notes string) {
	if idx := strings.Index(reason, legacyOperatorMarker); idx >= 0 {
		rest := reason[idx+len(legacyOperatorMarker):]
		operator = strings.TrimSpace(cutAtSeparator(rest))
	}
	if idx := strings.Index(reason, legacyNotesMarker); idx >= 0 {
		rest := reason[idx+len(legacyNotesMarker):]
		notes = strings.TrimSpace(cutAtSeparator(rest))
	}
	return operator, notes
}

func cutAtSeparator(s string) string {
	if idx := strings.Index(s, "|"); idx >= 0 {
		return s[:idx]
	}
	return s
}
