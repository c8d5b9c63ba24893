package repository

import (
	"context"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// SubscriptionRepository porta de persistência para assinaturas.
// GetByCompany devolve (nil, nil) quando a empresa não possui assinatura;
// o chamador decide a política (o gate nega acesso nesse caso).
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
}
