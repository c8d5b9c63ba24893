package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	apphttp "github.com/gestorpro/gestor-api/internal/interfaces/http"
)

type stubProductRepo struct{}

func (stubProductRepo) Create(*entity.Product) error { return nil }
func (stubProductRepo) GetByID(string) (*entity.Product, error) {
	return nil, nil
}
func (stubProductRepo) GetByCompanyAndSKU(string, string) (*entity.Product, error) { return nil, nil }
func (stubProductRepo) GetForUpdate(string) (*entity.Product, error)               { return nil, nil }
func (stubProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error)  { return nil, nil }
func (stubProductRepo) Update(*entity.Product) error                               { return nil }
func (stubProductRepo) UpdateStock(string, decimal.Decimal) error                  { return nil }
func (stubProductRepo) UpdateCost(string, decimal.Decimal) error                   { return nil }
func (stubProductRepo) CountLowStock(string) (int, error)                          { return 0, nil }

// stubMovementRepo registra o limit/offset com que a listagem foi chamada.
type stubMovementRepo struct {
	gotLimit  int
	gotOffset int
}

func (r *stubMovementRepo) Create(*entity.StockMovement) error { return nil }
func (r *stubMovementRepo) GetByID(string) (*entity.StockMovement, error) {
	return nil, nil
}
func (r *stubMovementRepo) ListByProduct(_ string, limit, offset int) ([]*entity.StockMovement, error) {
	r.gotLimit, r.gotOffset = limit, offset
	return nil, nil
}
func (r *stubMovementRepo) ListByCompany(_ string, limit, offset int) ([]*entity.StockMovement, error) {
	r.gotLimit, r.gotOffset = limit, offset
	return nil, nil
}
func (r *stubMovementRepo) Delete(string) error { return nil }

func buildKardexApp(movs *stubMovementRepo) *fiber.App {
	uc := ledger.NewUseCase(nil, stubProductRepo{}, movs)
	h := apphttp.NewLedgerHandler(uc)
	app := fiber.New()
	app.Get("/stock/kardex", apphttp.AuthMiddleware(testJWTSecret), h.Kardex)
	return app
}

func TestKardexHandler_PaginaEcoaValoresEfetivos(t *testing.T) {
	movs := &stubMovementRepo{}
	app := buildKardexApp(movs)

	// Query fora da faixa: limit acima do teto e offset negativo.
	req := httptest.NewRequest(http.MethodGet, "/stock/kardex?limit=1000&offset=-3", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.KardexResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	// A página ecoada é a efetivamente consultada, não a query crua.
	assert.Equal(t, 200, body.Page.Limit)
	assert.Equal(t, 0, body.Page.Offset)
	assert.Equal(t, 200, movs.gotLimit)
	assert.Equal(t, 0, movs.gotOffset)
}

func TestKardexHandler_SemQueryUsaPadroes(t *testing.T) {
	movs := &stubMovementRepo{}
	app := buildKardexApp(movs)

	req := httptest.NewRequest(http.MethodGet, "/stock/kardex", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.KardexResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 50, body.Page.Limit)
	assert.Equal(t, 0, body.Page.Offset)
}
