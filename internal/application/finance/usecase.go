package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// CreateInput é um lançamento financeiro avulso (não originado de venda).
type CreateInput struct {
	Type        string // receivable, payable
	Description string
	TotalAmount decimal.Decimal
	DueDate     time.Time
	EntityName  string
}

// EntryView é o lançamento anotado com o estado derivado de vencimento.
// Overdue nunca é armazenado: sai da comparação com o relógio na leitura.
type EntryView struct {
	Entry   *entity.FinancialEntry
	Overdue bool
}

// UseCase administra contas a receber e a pagar.
type UseCase struct {
	repo repository.FinancialEntryRepository
}

// NewUseCase constrói o caso de uso financeiro.
func NewUseCase(repo repository.FinancialEntryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create registra um lançamento avulso, sempre nascendo pendente.
func (uc *UseCase) Create(ctx context.Context, companyID string, in CreateInput) (*entity.FinancialEntry, error) {
	if in.Type != entity.FinancialReceivable && in.Type != entity.FinancialPayable {
		return nil, domain.ErrInvalidInput
	}
	if in.Description == "" || !in.TotalAmount.GreaterThan(decimal.Zero) || in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	entry := &entity.FinancialEntry{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Type:        in.Type,
		Description: in.Description,
		TotalAmount: in.TotalAmount,
		PaidAmount:  decimal.Zero,
		DueDate:     in.DueDate,
		Status:      entity.FinancialPending,
		EntityName:  in.EntityName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("gravando lançamento: %w", err)
	}
	return entry, nil
}

// RegisterPayment abate amount do saldo do lançamento. O pago acumulado nunca
// pode exceder o total; o status armazenado só avança
// (pending → partial → paid), derivado do valor pago.
func (uc *UseCase) RegisterPayment(ctx context.Context, companyID, entryID string, amount decimal.Decimal) (*entity.FinancialEntry, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	entry, err := uc.getOwned(companyID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == entity.FinancialPaid {
		return nil, domain.ErrPaymentExceedsTotal
	}

	paid := entry.PaidAmount.Add(amount)
	if paid.GreaterThan(entry.TotalAmount) {
		return nil, domain.ErrPaymentExceedsTotal
	}

	entry.PaidAmount = paid
	entry.Status = entry.DeriveStatus()
	entry.UpdatedAt = time.Now()
	if err := uc.repo.Update(entry); err != nil {
		return nil, fmt.Errorf("atualizando lançamento: %w", err)
	}
	return entry, nil
}

// GetByID devolve um lançamento com o vencimento derivado.
func (uc *UseCase) GetByID(ctx context.Context, companyID, entryID string) (*EntryView, error) {
	entry, err := uc.getOwned(companyID, entryID)
	if err != nil {
		return nil, err
	}
	return &EntryView{Entry: entry, Overdue: entry.IsOverdue(time.Now())}, nil
}

// List devolve os lançamentos da empresa, filtrando por tipo quando informado,
// cada um anotado com o vencimento derivado no instante da leitura.
func (uc *UseCase) List(ctx context.Context, companyID, entryType string, limit, offset int) ([]EntryView, error) {
	if entryType != "" && entryType != entity.FinancialReceivable && entryType != entity.FinancialPayable {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := uc.repo.ListByCompany(companyID, entryType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listando lançamentos: %w", err)
	}
	now := time.Now()
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{Entry: e, Overdue: e.IsOverdue(now)})
	}
	return views, nil
}

func (uc *UseCase) getOwned(companyID, entryID string) (*entity.FinancialEntry, error) {
	entry, err := uc.repo.GetByID(entryID)
	if err != nil {
		return nil, fmt.Errorf("buscando lançamento: %w", err)
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if entry.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}
