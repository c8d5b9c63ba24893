package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/access"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	apphttp "github.com/gestorpro/gestor-api/internal/interfaces/http"
	pkgjwt "github.com/gestorpro/gestor-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testEmail     = "dona@mercadinho.com.br"
	testIssuer    = "gestor-api-test"
	testExpMin    = 60
)

// buildTestApp monta uma aplicação Fiber mínima com AuthMiddleware +
// RequireRole e um handler que devolve 200 quando os middlewares passam.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole gera um JWT com o papel indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, testEmail, role, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAcessaRotaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin deve acessar rota restrita a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_VendedorEmRotaMultiPapel(t *testing.T) {
	app := buildTestApp("admin", "vendedor")
	resp := doRequest(t, app, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"vendedor deve acessar rota que permite admin ou vendedor")
}

func TestRequireRole_VendedorBloqueadoEmRotaAdmin(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"vendedor não deve acessar rota restrita a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_SemAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extração de claims
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraiClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"email":      apphttp.GetEmail(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireActiveSubscription — gate fail-closed na borda HTTP
// ──────────────────────────────────────────────────────────────────────────────

type stubSubRepo struct {
	sub *entity.Subscription
	err error
}

func (r *stubSubRepo) Create(ctx context.Context, sub *entity.Subscription) error { return nil }
func (r *stubSubRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return r.sub, r.err
}
func (r *stubSubRepo) Update(ctx context.Context, sub *entity.Subscription) error { return nil }

func buildGatedApp(superAdmin string, repo *stubSubRepo) *fiber.App {
	app := fiber.New()
	gate := access.NewGate(superAdmin)
	app.Get("/app",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireActiveSubscription(gate, repo),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireActiveSubscription_AssinaturaVigentePassa(t *testing.T) {
	end := time.Now().AddDate(0, 0, 15)
	repo := &stubSubRepo{sub: &entity.Subscription{
		CompanyID:        testCompanyID,
		Status:           entity.SubscriptionActive,
		CurrentPeriodEnd: &end,
	}}
	app := buildGatedApp("", repo)

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireActiveSubscription_SemAssinaturaRetorna402(t *testing.T) {
	app := buildGatedApp("", &stubSubRepo{sub: nil})

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), access.ReasonNoSubscription)
}

func TestRequireActiveSubscription_ErroNaConsultaNega(t *testing.T) {
	repo := &stubSubRepo{err: assert.AnError}
	app := buildGatedApp("", repo)

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode,
		"falha na consulta da assinatura nunca libera acesso")
}

func TestRequireActiveSubscription_SuperAdminSempreEntra(t *testing.T) {
	// Mesmo sem assinatura e com erro na consulta, o super-admin passa.
	repo := &stubSubRepo{err: assert.AnError}
	app := buildGatedApp(testEmail, repo)

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireActiveSubscription_VencidaRetorna402(t *testing.T) {
	end := time.Now().AddDate(0, 0, -1)
	repo := &stubSubRepo{sub: &entity.Subscription{
		CompanyID:        testCompanyID,
		Status:           entity.SubscriptionActive,
		CurrentPeriodEnd: &end,
	}}
	app := buildGatedApp("", repo)

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), access.ReasonExpired)
}
