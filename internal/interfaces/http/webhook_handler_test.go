package http_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/billing"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	apphttp "github.com/gestorpro/gestor-api/internal/interfaces/http"
	"github.com/gestorpro/gestor-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memSubRepo struct {
	subs map[string]*entity.Subscription
}

func (r *memSubRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	r.subs[sub.CompanyID] = sub
	return nil
}

func (r *memSubRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Subscription, error) {
	return r.subs[companyID], nil
}

func (r *memSubRepo) Update(ctx context.Context, sub *entity.Subscription) error {
	if _, ok := r.subs[sub.CompanyID]; !ok {
		return fmt.Errorf("assinatura inexistente")
	}
	r.subs[sub.CompanyID] = sub
	return nil
}

type memCompanyRepo struct{}

func (r *memCompanyRepo) Create(company *entity.Company) error { return nil }
func (r *memCompanyRepo) GetByID(id string) (*entity.Company, error) {
	return &entity.Company{ID: id, Name: "Mercadinho Boa Vista"}, nil
}
func (r *memCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error)  { return nil, nil }
func (r *memCompanyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (r *memCompanyRepo) Update(company *entity.Company) error              { return nil }

// buildWebhookApp monta só a rota do webhook, como o router de produção.
func buildWebhookApp(repo *memSubRepo, token string) *fiber.App {
	uc := billing.NewSubscriptionUseCase(repo, &memCompanyRepo{}, nil, decimal.NewFromInt(99))
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	app := fiber.New()
	handler := apphttp.NewWebhookHandler(uc, token, log)
	app.Post("/webhooks/payment", handler.HandlePayment)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("asaas-access-token", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func webhookBody(event, companyID string) string {
	return fmt.Sprintf(`{"event":%q,"payment":{"id":"pay_123","externalReference":%q}}`, event, companyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_PagamentoConfirmadoAtivaAssinatura(t *testing.T) {
	repo := &memSubRepo{subs: map[string]*entity.Subscription{
		"co-1": {ID: "sub-1", CompanyID: "co-1", Status: entity.SubscriptionPastDue},
	}}
	app := buildWebhookApp(repo, "")

	resp := postWebhook(t, app, webhookBody("PAYMENT_CONFIRMED", "co-1"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body), "o gateway espera corpo plano ok")

	sub := repo.subs["co-1"]
	assert.Equal(t, entity.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *sub.CurrentPeriodEnd, 5*time.Second)
}

func TestWebhook_PagamentoVencidoMarcaPastDue(t *testing.T) {
	end := time.Now().AddDate(0, 0, 3)
	repo := &memSubRepo{subs: map[string]*entity.Subscription{
		"co-1": {ID: "sub-1", CompanyID: "co-1", Status: entity.SubscriptionActive, CurrentPeriodEnd: &end},
	}}
	app := buildWebhookApp(repo, "")

	resp := postWebhook(t, app, webhookBody("PAYMENT_OVERDUE", "co-1"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.SubscriptionPastDue, repo.subs["co-1"].Status)
}

func TestWebhook_EventoDesconhecidoRespondeOkSemMudarNada(t *testing.T) {
	repo := &memSubRepo{subs: map[string]*entity.Subscription{
		"co-1": {ID: "sub-1", CompanyID: "co-1", Status: entity.SubscriptionInactive},
	}}
	app := buildWebhookApp(repo, "")

	resp := postWebhook(t, app, webhookBody("PAYMENT_CREATED", "co-1"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body), "evento desconhecido é reconhecido sem efeito")
	assert.Equal(t, entity.SubscriptionInactive, repo.subs["co-1"].Status)
}

func TestWebhook_EmpresaDesconhecidaResponde500Error(t *testing.T) {
	repo := &memSubRepo{subs: map[string]*entity.Subscription{}}
	app := buildWebhookApp(repo, "")

	resp := postWebhook(t, app, webhookBody("PAYMENT_CONFIRMED", "co-fantasma"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "error", string(body), "falha responde corpo plano error para o gateway reenviar")
}

func TestWebhook_TokenErradoRejeita(t *testing.T) {
	repo := &memSubRepo{subs: map[string]*entity.Subscription{
		"co-1": {ID: "sub-1", CompanyID: "co-1", Status: entity.SubscriptionPastDue},
	}}
	app := buildWebhookApp(repo, "tok-secreto")

	resp := postWebhook(t, app, webhookBody("PAYMENT_CONFIRMED", "co-1"), "tok-errado")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, entity.SubscriptionPastDue, repo.subs["co-1"].Status,
		"token inválido não pode aplicar o evento")
}

func TestWebhook_TokenCorretoAceita(t *testing.T) {
	repo := &memSubRepo{subs: map[string]*entity.Subscription{
		"co-1": {ID: "sub-1", CompanyID: "co-1", Status: entity.SubscriptionPastDue},
	}}
	app := buildWebhookApp(repo, "tok-secreto")

	resp := postWebhook(t, app, webhookBody("PAYMENT_RECEIVED", "co-1"), "tok-secreto")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.SubscriptionActive, repo.subs["co-1"].Status)
}

func TestWebhook_CorpoIlegivelResponde400(t *testing.T) {
	repo := &memSubRepo{subs: map[string]*entity.Subscription{}}
	app := buildWebhookApp(repo, "")

	resp := postWebhook(t, app, `{nao é json`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "error", string(body))
}
