package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
	"github.com/gestorpro/gestor-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: cadastro de empresa e login.
type UseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase constrói o caso de uso de auth. userRepo atende as leituras fora
// de transação (unicidade de email, login); as gravações do cadastro passam
// pelo txRunner.
func NewUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{txRunner: txRunner, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Signup provisiona uma empresa nova: a Company, sua assinatura (nasce
// inactive, sem acesso até o primeiro pagamento ou concessão manual) e o
// usuário admin. Cada cadastro ganha a própria empresa; não existe tenant
// compartilhado padrão.
func (uc *UseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.CompanyName == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("verificando email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("gerando hash de senha: %w", err)
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		TaxID:     in.TaxID,
		Email:     email,
		Phone:     in.Phone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Status:    entity.SubscriptionInactive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         entity.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Empresa, assinatura e admin entram juntos; falhar em qualquer passo
	// desfaz os anteriores e não deixa empresa órfã.
	err = uc.txRunner.RunSignup(ctx, func(
		companyRepo repository.CompanyRepository,
		subRepo repository.SubscriptionRepository,
		userRepo repository.UserRepository,
	) error {
		if err := companyRepo.Create(company); err != nil {
			return fmt.Errorf("criando empresa: %w", err)
		}
		if err := subRepo.Create(ctx, sub); err != nil {
			return fmt.Errorf("criando assinatura: %w", err)
		}
		if err := userRepo.Create(user); err != nil {
			return fmt.Errorf("criando usuário: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.token(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Login verifica email/senha, gera o JWT e devolve token + usuário.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("buscando usuário: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}

	token, err := uc.token(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

func (uc *UseCase) token(user *entity.User) (string, error) {
	token, err := jwt.Generate(
		uc.jwtCfg.Secret,
		user.ID, user.CompanyID, user.Email, user.Role,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return "", fmt.Errorf("gerando token: %w", err)
	}
	return token, nil
}

// ToUserResponse converte a entidade para o DTO de resposta.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		CompanyID:     u.CompanyID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		Role:          u.Role,
		CommissionPct: u.CommissionPct,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
