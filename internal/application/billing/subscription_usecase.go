package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
	"github.com/gestorpro/gestor-api/pkg/fiscal"
)

// Eventos aceitos no webhook do gateway de pagamento.
const (
	EventPaymentReceived  = "PAYMENT_RECEIVED"
	EventPaymentConfirmed = "PAYMENT_CONFIRMED"
	EventPaymentOverdue   = "PAYMENT_OVERDUE"
)

// Dias de vigência concedidos a cada pagamento confirmado.
const paidPeriodDays = 30

// SubscriptionUseCase administra o ciclo de vida da assinatura: consulta de
// status, ações manuais do super-admin, eventos do webhook de pagamento e
// criação de checkout no gateway.
type SubscriptionUseCase struct {
	subRepo     repository.SubscriptionRepository
	companyRepo repository.CompanyRepository
	gateway     PaymentGateway
	planAmount  decimal.Decimal
}

// NewSubscriptionUseCase constrói o caso de uso.
func NewSubscriptionUseCase(
	subRepo repository.SubscriptionRepository,
	companyRepo repository.CompanyRepository,
	gateway PaymentGateway,
	planAmount decimal.Decimal,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subRepo:     subRepo,
		companyRepo: companyRepo,
		gateway:     gateway,
		planAmount:  planAmount,
	}
}

// GetByCompany devolve a assinatura da empresa, ou nil quando não existe.
func (uc *SubscriptionUseCase) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return uc.subRepo.GetByCompany(ctx, companyID)
}

// ManualGrant estende manualmente a vigência em days dias. Quando a vigência
// atual já venceu, o novo período conta a partir de agora, não da data vencida
// (start = max(now, current_period_end)). Marca manual_override.
func (uc *SubscriptionUseCase) ManualGrant(ctx context.Context, companyID string, days int) (*entity.Subscription, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sub, err := uc.subRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscando assinatura: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	start := now
	if sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.After(now) {
		start = *sub.CurrentPeriodEnd
	}
	end := start.AddDate(0, 0, days)

	sub.Status = entity.SubscriptionActive
	sub.CurrentPeriodEnd = &end
	sub.ManualOverride = true
	sub.BlockedReason = nil
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("atualizando assinatura: %w", err)
	}
	return sub, nil
}

// ManualBlock bloqueia a assinatura com um motivo (ação do super-admin).
func (uc *SubscriptionUseCase) ManualBlock(ctx context.Context, companyID, reason string) (*entity.Subscription, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	sub, err := uc.subRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscando assinatura: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	sub.Status = entity.SubscriptionBlockedManual
	sub.BlockedReason = &reason
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("atualizando assinatura: %w", err)
	}
	return sub, nil
}

// ManualUnblock reverte um bloqueio manual, limpando o motivo.
func (uc *SubscriptionUseCase) ManualUnblock(ctx context.Context, companyID string) (*entity.Subscription, error) {
	sub, err := uc.subRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("buscando assinatura: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	sub.Status = entity.SubscriptionActive
	sub.BlockedReason = nil
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("atualizando assinatura: %w", err)
	}
	return sub, nil
}

// HandlePaymentEvent aplica um evento do webhook à assinatura referenciada
// pelo id da empresa (externalReference do gateway). Pagamento confirmado
// ativa e renova por 30 dias a partir de agora, independente do estado
// anterior; atraso rebaixa para past_due sem mexer na vigência; eventos
// desconhecidos são reconhecidos sem efeito.
func (uc *SubscriptionUseCase) HandlePaymentEvent(ctx context.Context, event, companyID string) error {
	switch event {
	case EventPaymentReceived, EventPaymentConfirmed:
		sub, err := uc.subRepo.GetByCompany(ctx, companyID)
		if err != nil {
			return fmt.Errorf("buscando assinatura: %w", err)
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		end := time.Now().AddDate(0, 0, paidPeriodDays)
		sub.Status = entity.SubscriptionActive
		sub.CurrentPeriodEnd = &end
		sub.ManualOverride = false
		if err := uc.subRepo.Update(ctx, sub); err != nil {
			return fmt.Errorf("atualizando assinatura: %w", err)
		}
		return nil

	case EventPaymentOverdue:
		sub, err := uc.subRepo.GetByCompany(ctx, companyID)
		if err != nil {
			return fmt.Errorf("buscando assinatura: %w", err)
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		sub.Status = entity.SubscriptionPastDue
		if err := uc.subRepo.Update(ctx, sub); err != nil {
			return fmt.Errorf("atualizando assinatura: %w", err)
		}
		return nil
	}

	// Evento não tratado: reconhece sem efeito.
	return nil
}

// CreateCheckout valida o CPF/CNPJ, garante o cliente no gateway, cria a
// cobrança do plano e devolve a URL da fatura. O documento validado é
// persistido na assinatura para as cobranças seguintes.
func (uc *SubscriptionUseCase) CreateCheckout(ctx context.Context, companyID, taxID string) (string, error) {
	normalized := fiscal.Normalize(taxID)
	if err := fiscal.ValidateTaxID(normalized); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidTaxID, err)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return "", fmt.Errorf("buscando empresa: %w", err)
	}
	if company == nil {
		return "", domain.ErrNotFound
	}
	sub, err := uc.subRepo.GetByCompany(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("buscando assinatura: %w", err)
	}
	if sub == nil {
		return "", domain.ErrNotFound
	}

	if sub.GatewayCustomer == "" {
		customerID, err := uc.gateway.FindOrCreateCustomer(ctx, company.Name, normalized, company.Email)
		if err != nil {
			return "", fmt.Errorf("criando cliente no gateway: %w", err)
		}
		sub.GatewayCustomer = customerID
	}

	payment, err := uc.gateway.CreatePayment(ctx, PaymentRequest{
		CustomerID:        sub.GatewayCustomer,
		ExternalReference: companyID,
		Description:       fmt.Sprintf("Assinatura GestorPro - %s", company.Name),
		Amount:            uc.planAmount,
		DueDate:           time.Now().AddDate(0, 0, 3),
	})
	if err != nil {
		return "", fmt.Errorf("criando cobrança no gateway: %w", err)
	}

	sub.TaxID = normalized
	if err := uc.subRepo.Update(ctx, sub); err != nil {
		return "", fmt.Errorf("atualizando assinatura: %w", err)
	}
	return payment.InvoiceURL, nil
}
