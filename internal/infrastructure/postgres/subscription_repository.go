package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = `id, company_id, status, current_period_end, manual_override, blocked_reason, tax_id, gateway_customer, created_at, updated_at`

// SubscriptionRepo implementação de SubscriptionRepository sobre PostgreSQL.
// A constraint UNIQUE em company_id garante no máximo uma assinatura por
// empresa.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository constrói o adaptador de assinaturas. Passar pool ou tx.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persiste a assinatura criada no provisionamento da empresa.
func (r *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sub.ID, sub.CompanyID, sub.Status, sub.CurrentPeriodEnd, sub.ManualOverride,
		sub.BlockedReason, sub.TaxID, sub.GatewayCustomer, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByCompany busca a assinatura da empresa. Devolve (nil, nil) quando não
// existe: a decisão de negar acesso é do gate, não do repositório.
func (r *SubscriptionRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE company_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Status, &s.CurrentPeriodEnd, &s.ManualOverride,
		&s.BlockedReason, &s.TaxID, &s.GatewayCustomer, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// Update grava o novo estado da assinatura (webhook ou ação manual).
func (r *SubscriptionRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET status = $2, current_period_end = $3, manual_override = $4,
		    blocked_reason = $5, tax_id = $6, gateway_customer = $7, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		sub.ID, sub.Status, sub.CurrentPeriodEnd, sub.ManualOverride,
		sub.BlockedReason, sub.TaxID, sub.GatewayCustomer,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}
