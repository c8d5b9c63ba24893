// Package ledger implementa o livro de estoque (Kardex): quantidade corrente
// por produto mais um log append-only de movimentos, com a garantia de que o
// estoque atual sempre é igual ao estoque inicial somado aos deltas gravados.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// UseCase registra movimentos de estoque de forma transacional com bloqueio
// de linha (SELECT FOR UPDATE) sobre o produto. O bloqueio serializa
// escritores concorrentes do mesmo produto e fecha a janela de lost update
// de um read-modify-write sem coordenação.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewUseCase constrói o caso de uso do livro de estoque.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// EntryInput entrada de fornecedor: soma quantity ao estoque.
type EntryInput struct {
	CompanyID string
	ProductID string
	Quantity  decimal.Decimal  // > 0
	Operator  string           // obrigatório
	UnitCost  *decimal.Decimal // opcional; quando presente atualiza o preço de custo
	Notes     string
	UserID    string // opcional
}

// AdjustmentInput ajuste manual com delta assinado.
type AdjustmentInput struct {
	CompanyID  string
	ProductID  string
	Quantity   decimal.Decimal // != 0, positivo ou negativo
	ReasonCode string          // erro_contagem, avaria, bonificacao, perda, outros
	Operator   string
	Notes      string
	UserID     string
}

// RecordEntry registra uma entrada de fornecedor.
// Pré-condições: quantity > 0, operator não vazio, unit cost não negativo.
func (uc *UseCase) RecordEntry(ctx context.Context, in EntryInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.Operator == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := uc.lockProduct(productRepo, in.CompanyID, in.ProductID)
		if err != nil {
			return err
		}
		newStock := product.Stock.Add(in.Quantity)
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		if in.UnitCost != nil {
			if err := productRepo.UpdateCost(product.ID, *in.UnitCost); err != nil {
				return err
			}
		}
		mov = newMovement(product, in.Quantity, newStock, entity.ReasonEntradaFornecedor, in.Operator, in.Notes, in.UserID, nil)
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordAdjustment registra um ajuste manual.
// Pré-condições: delta != 0, código de motivo do conjunto fixo, estoque
// resultante >= 0 — caso contrário falha sem nenhuma mutação.
func (uc *UseCase) RecordAdjustment(ctx context.Context, in AdjustmentInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.Operator == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidAdjustmentCode(in.ReasonCode) {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := uc.lockProduct(productRepo, in.CompanyID, in.ProductID)
		if err != nil {
			return err
		}
		newStock := product.Stock.Add(in.Quantity)
		if newStock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		reason := entity.ReasonAjustePrefix + in.ReasonCode
		mov = newMovement(product, in.Quantity, newStock, reason, in.Operator, in.Notes, in.UserID, nil)
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordSaleExitInTx registra a saída de estoque de um item vendido usando os
// repositórios do chamador (mesma transação da venda). É o único movimento
// disparado por outro fluxo em vez de ação direta do operador; se retornar
// erro (ex.: ErrInsufficientStock), o chamador deve fazer rollback de tudo.
func (uc *UseCase) RecordSaleExitInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	companyID, productID, sellerName, userID string,
	quantity decimal.Decimal,
	saleID string,
) (*entity.StockMovement, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.lockProduct(productRepo, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}
	newStock := product.Stock.Sub(quantity)
	if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	mov := newMovement(product, quantity.Neg(), newStock, entity.ReasonVenda, sellerName, "", userID, &saleID)
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// DeleteMovement remove um movimento do log. Correção de auditoria restrita a
// admin: NÃO recalcula o estoque do produto; estornos normais são sempre um
// novo ajuste compensatório.
func (uc *UseCase) DeleteMovement(ctx context.Context, companyID, role, movementID string) error {
	if role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	mov, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	if mov.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.movRepo.Delete(movementID)
}

// lockProduct busca o produto com FOR UPDATE e valida que pertence à empresa.
func (uc *UseCase) lockProduct(productRepo repository.ProductRepository, companyID, productID string) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func newMovement(
	product *entity.Product,
	quantity, newStock decimal.Decimal,
	reason, operator, notes, userID string,
	saleID *string,
) *entity.StockMovement {
	var performedBy *string
	if userID != "" {
		performedBy = &userID
	}
	return &entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   product.CompanyID,
		ProductID:   product.ID,
		Quantity:    quantity,
		NewStock:    newStock,
		Reason:      reason,
		Operator:    operator,
		Notes:       notes,
		SaleID:      saleID,
		PerformedBy: performedBy,
		CreatedAt:   time.Now(),
	}
}
