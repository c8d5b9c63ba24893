package auth

import (
	"context"

	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação, entregando repositórios atados
// a ela. O cadastro grava empresa, assinatura e usuário admin pelo mesmo fn:
// ou o tenant inteiro nasce, ou nada fica para trás.
type TxRunner interface {
	RunSignup(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		subRepo repository.SubscriptionRepository,
		userRepo repository.UserRepository,
	) error) error
}
