package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}
func (r *fakeProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	r.products[id].Stock = stock
	return nil
}
func (r *fakeProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.products[id].CostPrice = cost
	return nil
}
func (r *fakeProductRepo) CountLowStock(companyID string) (int, error) { return 0, nil }

func criaProduto(t *testing.T, uc *usecase.ProductUseCase, sku string, stock, minStock int64) *dto.ProductResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), "co-1", dto.CreateProductRequest{
		SKU:          sku,
		Name:         "Produto " + sku,
		SalePrice:    decimal.NewFromInt(10),
		CostPrice:    decimal.NewFromInt(6),
		InitialStock: decimal.NewFromInt(stock),
		MinStock:     decimal.NewFromInt(minStock),
	})
	require.NoError(t, err)
	return p
}

func TestProduct_EstoqueBaixoDerivadoComLimiteEstrito(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	// stock=3 < min=5 → baixo; stock=5, min=5 → não (limite é <, não <=).
	baixo := criaProduto(t, uc, "SKU-1", 3, 5)
	noLimite := criaProduto(t, uc, "SKU-2", 5, 5)

	assert.True(t, baixo.LowStock)
	assert.False(t, noLimite.LowStock)
}

func TestProduct_SKUDuplicadoNaMesmaEmpresa(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	criaProduto(t, uc, "SKU-1", 1, 0)

	_, err := uc.Create(context.Background(), "co-1", dto.CreateProductRequest{
		SKU: "SKU-1", Name: "Outro", InitialStock: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProduct_UpdateNaoTocaEstoqueNemCusto(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)
	p := criaProduto(t, uc, "SKU-1", 10, 2)

	nome := "Arroz agulhinha 5kg"
	preco := decimal.NewFromFloat(27.90)
	updated, err := uc.Update(context.Background(), "co-1", p.ID, dto.UpdateProductRequest{
		Name:      &nome,
		SalePrice: &preco,
	})
	require.NoError(t, err)

	assert.Equal(t, nome, updated.Name)
	assert.True(t, updated.Stock.Equal(decimal.NewFromInt(10)), "estoque só muda pelo livro")
	assert.True(t, updated.CostPrice.Equal(decimal.NewFromInt(6)), "custo só muda por entrada com custo")
}

func TestProduct_MargemDerivada(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	p := criaProduto(t, uc, "SKU-1", 1, 0)

	// (10 - 6) / 10 = 40%
	assert.True(t, p.MarginPct.Equal(decimal.NewFromInt(40)), "margem %s", p.MarginPct)
}

func TestProduct_IsolamentoPorEmpresa(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	p := criaProduto(t, uc, "SKU-1", 1, 0)

	_, err := uc.GetByID(context.Background(), "co-2", p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
