package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestorpro/gestor-api/internal/application/auth"
	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// UserUseCase administração de usuários da empresa (ações de admin).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Create cadastra um usuário na empresa do admin chamador.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleAdmin && in.Role != entity.RoleVendedor {
		return nil, domain.ErrInvalidInput
	}
	if in.CommissionPct.IsNegative() {
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
	user := &entity.User{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Email:         email,
		PasswordHash:  string(hash),
		Name:          in.Name,
		Phone:         in.Phone,
		Role:          in.Role,
		CommissionPct: in.CommissionPct,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("criando usuário: %w", err)
	}
	return auth.ToUserResponse(user), nil
}

// Update altera papel, comissão, telefone ou nome de um usuário da empresa.
func (uc *UserUseCase) Update(ctx context.Context, companyID, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.getOwned(companyID, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleVendedor {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.CommissionPct != nil {
		if in.CommissionPct.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		user.CommissionPct = *in.CommissionPct
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("atualizando usuário: %w", err)
	}
	return auth.ToUserResponse(user), nil
}

// Archive desativa o usuário e renomeia o email para liberá-lo para reuso,
// preservando a linha e todo o histórico que a referencia (vendas, movimentos).
func (uc *UserUseCase) Archive(ctx context.Context, companyID, userID string) error {
	user, err := uc.getOwned(companyID, userID)
	if err != nil {
		return err
	}
	if !user.Active {
		return domain.ErrConflict
	}

	user.Email = fmt.Sprintf("arquivado_%d_%s", time.Now().Unix(), user.Email)
	user.Active = false
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return fmt.Errorf("arquivando usuário: %w", err)
	}
	return nil
}

// List devolve os usuários da empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listando usuários: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// GetByID devolve um usuário da empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, userID string) (*dto.UserResponse, error) {
	user, err := uc.getOwned(companyID, userID)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

func (uc *UserUseCase) getOwned(companyID, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("buscando usuário: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
