package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/auth"
	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
	"github.com/gestorpro/gestor-api/pkg/jwt"
)

type fakeUserRepo struct {
	users      map[string]*entity.User // por id
	failCreate error
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { cp := *u; r.users[u.ID] = &cp; return nil }

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}
func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) { return r.companies[id], nil }
func (r *fakeCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	return nil, nil
}
func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (r *fakeCompanyRepo) Update(c *entity.Company) error                    { return nil }

type fakeSubRepo struct {
	subs       map[string]*entity.Subscription // por company id
	failCreate error
}

func (r *fakeSubRepo) Create(_ context.Context, s *entity.Subscription) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *s
	r.subs[s.CompanyID] = &cp
	return nil
}
func (r *fakeSubRepo) GetByCompany(_ context.Context, companyID string) (*entity.Subscription, error) {
	return r.subs[companyID], nil
}
func (r *fakeSubRepo) Update(_ context.Context, s *entity.Subscription) error { return nil }

// fakeSignupRunner desfaz as gravações de empresa, assinatura e usuário
// quando fn falha, imitando o rollback da transação real.
type fakeSignupRunner struct {
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	subs      *fakeSubRepo
}

func (t fakeSignupRunner) RunSignup(_ context.Context, fn func(
	companyRepo repository.CompanyRepository,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) error) error {
	usersSnap := map[string]*entity.User{}
	for k, v := range t.users.users {
		cp := *v
		usersSnap[k] = &cp
	}
	companiesSnap := map[string]*entity.Company{}
	for k, v := range t.companies.companies {
		cp := *v
		companiesSnap[k] = &cp
	}
	subsSnap := map[string]*entity.Subscription{}
	for k, v := range t.subs.subs {
		cp := *v
		subsSnap[k] = &cp
	}
	if err := fn(t.companies, t.subs, t.users); err != nil {
		t.users.users = usersSnap
		t.companies.companies = companiesSnap
		t.subs.subs = subsSnap
		return err
	}
	return nil
}

func newAuth() (*auth.UseCase, *fakeUserRepo, *fakeCompanyRepo, *fakeSubRepo) {
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	subs := &fakeSubRepo{subs: map[string]*entity.Subscription{}}
	runner := fakeSignupRunner{users: users, companies: companies, subs: subs}
	uc := auth.NewUseCase(runner, users, auth.JWTConfig{
		Secret: "segredo-de-teste", ExpMinutes: 60, Issuer: "gestor-api",
	})
	return uc, users, companies, subs
}

func TestSignup_ProvisionaEmpresaAssinaturaEAdmin(t *testing.T) {
	uc, users, companies, subs := newAuth()

	resp, err := uc.Signup(context.Background(), dto.SignupRequest{
		CompanyName: "Mercadinho Boa Vista",
		Name:        "Maria Souza",
		Email:       "Maria@BoaVista.com.br",
		Password:    "senha123",
	})
	require.NoError(t, err)

	// Email normalizado, papel admin, empresa própria.
	assert.Equal(t, "maria@boavista.com.br", resp.User.Email)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
	require.Contains(t, companies.companies, resp.User.CompanyID)

	// Assinatura nasce inactive: sem acesso até pagar ou concessão manual.
	sub := subs.subs[resp.User.CompanyID]
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubscriptionInactive, sub.Status)
	assert.Nil(t, sub.CurrentPeriodEnd)

	// Senha nunca persiste em claro.
	u := users.users[resp.User.ID]
	assert.NotEqual(t, "senha123", u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)

	// Token carrega empresa e papel para os middlewares.
	claims, err := jwt.Parse("segredo-de-teste", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.CompanyID, claims.CompanyID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.Equal(t, "maria@boavista.com.br", claims.Email)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	uc, _, _, _ := newAuth()
	ctx := context.Background()

	in := dto.SignupRequest{
		CompanyName: "Empresa A", Name: "Maria", Email: "maria@a.com", Password: "senha123",
	}
	_, err := uc.Signup(ctx, in)
	require.NoError(t, err)

	in.CompanyName = "Empresa B"
	_, err = uc.Signup(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_FalhaNaAssinaturaNaoDeixaEmpresaOrfa(t *testing.T) {
	uc, users, companies, subs := newAuth()
	subs.failCreate = assert.AnError

	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		CompanyName: "Empresa A", Name: "Maria", Email: "maria@a.com", Password: "senha123",
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.Empty(t, companies.companies, "empresa criada antes da falha precisa ser desfeita")
	assert.Empty(t, subs.subs)
	assert.Empty(t, users.users)
}

func TestSignup_FalhaNoUsuarioDesfazEmpresaEAssinatura(t *testing.T) {
	uc, users, companies, subs := newAuth()
	users.failCreate = assert.AnError

	_, err := uc.Signup(context.Background(), dto.SignupRequest{
		CompanyName: "Empresa A", Name: "Maria", Email: "maria@a.com", Password: "senha123",
	})
	require.ErrorIs(t, err, assert.AnError)

	assert.Empty(t, companies.companies)
	assert.Empty(t, subs.subs)
	assert.Empty(t, users.users)
}

func TestLogin_SenhaErradaEUsuarioInexistente(t *testing.T) {
	uc, _, _, _ := newAuth()
	ctx := context.Background()

	_, err := uc.Signup(ctx, dto.SignupRequest{
		CompanyName: "Empresa A", Name: "Maria", Email: "maria@a.com", Password: "senha123",
	})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "maria@a.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@a.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "MARIA@a.com", Password: "senha123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_UsuarioArquivadoNaoEntra(t *testing.T) {
	uc, users, _, _ := newAuth()
	ctx := context.Background()

	resp, err := uc.Signup(ctx, dto.SignupRequest{
		CompanyName: "Empresa A", Name: "Maria", Email: "maria@a.com", Password: "senha123",
	})
	require.NoError(t, err)

	u := users.users[resp.User.ID]
	u.Active = false

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "maria@a.com", Password: "senha123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
