package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/application/sales"
	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products   map[string]*entity.Product
	movements  []*entity.StockMovement
	sales      map[string]*entity.Sale
	saleItems  []*entity.SaleItem
	financials []*entity.FinancialEntry
	customers  map[string]*entity.Customer
	users      map[string]*entity.User
	companies  map[string]*entity.Company
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  map[string]*entity.Product{},
		sales:     map[string]*entity.Sale{},
		customers: map[string]*entity.Customer{},
		users:     map[string]*entity.User{},
		companies: map[string]*entity.Company{},
	}
}

// Repositórios sobre o fakeStore.

type productRepo struct{ s *fakeStore }

func (r productRepo) Create(p *entity.Product) error { cp := *p; r.s.products[p.ID] = &cp; return nil }
func (r productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r productRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (r productRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r productRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r productRepo) Update(p *entity.Product) error { cp := *p; r.s.products[p.ID] = &cp; return nil }
func (r productRepo) UpdateStock(id string, stock decimal.Decimal) error {
	r.s.products[id].Stock = stock
	return nil
}
func (r productRepo) UpdateCost(id string, cost decimal.Decimal) error {
	r.s.products[id].CostPrice = cost
	return nil
}
func (r productRepo) CountLowStock(companyID string) (int, error) { return 0, nil }

type movementRepo struct{ s *fakeStore }

func (r movementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r movementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }
func (r movementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r movementRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r movementRepo) Delete(id string) error { return nil }

type saleRepo struct{ s *fakeStore }

func (r saleRepo) Create(sale *entity.Sale) error { cp := *sale; r.s.sales[sale.ID] = &cp; return nil }
func (r saleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.saleItems = append(r.s.saleItems, &cp)
	return nil
}
func (r saleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}
func (r saleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r saleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.CompanyID == companyID {
			out = append(out, sale)
		}
	}
	return out, nil
}

type financialRepo struct{ s *fakeStore }

func (r financialRepo) Create(e *entity.FinancialEntry) error {
	cp := *e
	r.s.financials = append(r.s.financials, &cp)
	return nil
}
func (r financialRepo) GetByID(id string) (*entity.FinancialEntry, error) { return nil, nil }
func (r financialRepo) ListByCompany(companyID, entryType string, limit, offset int) ([]*entity.FinancialEntry, error) {
	return nil, nil
}
func (r financialRepo) Update(e *entity.FinancialEntry) error { return nil }

type customerRepo struct{ s *fakeStore }

func (r customerRepo) Create(c *entity.Customer) error { return nil }
func (r customerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.s.customers[id], nil
}
func (r customerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r customerRepo) Update(c *entity.Customer) error { return nil }

type userRepo struct{ s *fakeStore }

func (r userRepo) Create(u *entity.User) error                    { return nil }
func (r userRepo) GetByID(id string) (*entity.User, error)        { return r.s.users[id], nil }
func (r userRepo) FindByEmail(email string) (*entity.User, error) { return nil, nil }
func (r userRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r userRepo) Update(u *entity.User) error { return nil }

type companyRepo struct{ s *fakeStore }

func (r companyRepo) Create(c *entity.Company) error             { return nil }
func (r companyRepo) GetByID(id string) (*entity.Company, error) { return r.s.companies[id], nil }
func (r companyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	return nil, nil
}
func (r companyRepo) List(limit, offset int) ([]*entity.Company, error) { return nil, nil }
func (r companyRepo) Update(c *entity.Company) error                    { return nil }

// fakeTxRunner desfaz todas as mutações do fakeStore quando fn falha,
// imitando o rollback da transação real.
type fakeTxRunner struct{ s *fakeStore }

func (t fakeTxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	financialRepo repository.FinancialEntryRepository,
) error) error {
	snap := t.snapshot()
	if err := fn(movementRepo{t.s}, productRepo{t.s}, saleRepo{t.s}, financialRepo{t.s}); err != nil {
		t.restore(snap)
		return err
	}
	return nil
}

func (t fakeTxRunner) snapshot() *fakeStore {
	snap := newFakeStore()
	for k, v := range t.s.products {
		cp := *v
		snap.products[k] = &cp
	}
	for k, v := range t.s.sales {
		cp := *v
		snap.sales[k] = &cp
	}
	snap.movements = append([]*entity.StockMovement(nil), t.s.movements...)
	snap.saleItems = append([]*entity.SaleItem(nil), t.s.saleItems...)
	snap.financials = append([]*entity.FinancialEntry(nil), t.s.financials...)
	return snap
}

func (t fakeTxRunner) restore(snap *fakeStore) {
	t.s.products = snap.products
	t.s.sales = snap.sales
	t.s.movements = snap.movements
	t.s.saleItems = snap.saleItems
	t.s.financials = snap.financials
}

type fakeReceipts struct{ pdf []byte }

func (g fakeReceipts) Generate(*entity.Company, *entity.Sale, []*entity.SaleItem) ([]byte, error) {
	return g.pdf, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base
// ──────────────────────────────────────────────────────────────────────────────

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newSales(t *testing.T) (*sales.UseCase, *fakeStore) {
	t.Helper()
	s := newFakeStore()
	s.companies["co-1"] = &entity.Company{ID: "co-1", Name: "Mercadinho Boa Vista"}
	s.users["u-1"] = &entity.User{
		ID: "u-1", CompanyID: "co-1", Name: "Ana", Role: entity.RoleVendedor,
		CommissionPct: decimal.NewFromInt(5), Active: true,
	}
	s.customers["c-1"] = &entity.Customer{ID: "c-1", CompanyID: "co-1", Name: "José da Silva", Status: entity.CustomerAtivo}
	s.customers["c-outra"] = &entity.Customer{ID: "c-outra", CompanyID: "co-2", Name: "Outro"}
	s.products["p-1"] = &entity.Product{
		ID: "p-1", CompanyID: "co-1", SKU: "ARZ-5KG", Name: "Arroz 5kg",
		SalePrice: decimal.NewFromFloat(25.90), Stock: dec(10), MinStock: dec(2), Active: true,
	}
	s.products["p-2"] = &entity.Product{
		ID: "p-2", CompanyID: "co-1", SKU: "FEJ-1KG", Name: "Feijão 1kg",
		SalePrice: decimal.NewFromFloat(8.50), Stock: dec(4), MinStock: dec(2), Active: true,
	}

	ledgerUC := ledger.NewUseCase(nil, productRepo{s}, movementRepo{s})
	uc := sales.NewUseCase(
		fakeTxRunner{s}, ledgerUC,
		productRepo{s}, customerRepo{s}, userRepo{s}, saleRepo{s}, companyRepo{s},
		fakeReceipts{pdf: []byte("%PDF-1.7")},
	)
	return uc, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_AVistaGravaTudoNaMesmaTransacao(t *testing.T) {
	uc, s := newSales(t)
	customerID := "c-1"

	sw, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		CustomerID:    &customerID,
		PaymentMethod: entity.SalePaymentCash,
		Items: []sales.SaleItemInput{
			{ProductID: "p-1", Quantity: dec(2)},
			{ProductID: "p-2", Quantity: dec(3)},
		},
	})
	require.NoError(t, err)

	// Total: 2×25.90 + 3×8.50 = 77.30; comissão 5% = 3.87 (arredondada).
	assert.True(t, sw.Sale.Total.Equal(decimal.NewFromFloat(77.30)), "total %s", sw.Sale.Total)
	assert.True(t, sw.Sale.CommissionAmt.Equal(decimal.NewFromFloat(3.87)), "comissão %s", sw.Sale.CommissionAmt)
	assert.Equal(t, "Ana", sw.Sale.SellerName)
	assert.Equal(t, "José da Silva", sw.Sale.CustomerName)

	// Estoque baixado por item.
	assert.True(t, s.products["p-1"].Stock.Equal(dec(8)))
	assert.True(t, s.products["p-2"].Stock.Equal(dec(1)))

	// Um movimento venda por item, referenciando a venda.
	require.Len(t, s.movements, 2)
	for _, m := range s.movements {
		assert.Equal(t, entity.ReasonVenda, m.Reason)
		require.NotNil(t, m.SaleID)
		assert.Equal(t, sw.Sale.ID, *m.SaleID)
		assert.True(t, m.Quantity.IsNegative())
	}

	// Conta a receber já quitada (à vista).
	require.Len(t, s.financials, 1)
	entry := s.financials[0]
	assert.Equal(t, entity.FinancialReceivable, entry.Type)
	assert.Equal(t, entity.FinancialPaid, entry.Status)
	assert.True(t, entry.PaidAmount.Equal(sw.Sale.Total))
	require.NotNil(t, entry.SaleID)
	assert.Equal(t, sw.Sale.ID, *entry.SaleID)

	require.Len(t, sw.Items, 2)
	assert.Equal(t, "ARZ-5KG", sw.Items[0].SKU)
	assert.True(t, sw.Items[0].UnitPrice.Equal(decimal.NewFromFloat(25.90)), "preço padrão vem do cadastro")
}

func TestCreateSale_PrecoInformadoSobrepoeOCadastro(t *testing.T) {
	uc, _ := newSales(t)
	promocional := decimal.NewFromFloat(19.90)

	sw, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items: []sales.SaleItemInput{
			{ProductID: "p-1", Quantity: dec(2), UnitPrice: &promocional},
		},
	})
	require.NoError(t, err)

	assert.True(t, sw.Sale.Total.Equal(decimal.NewFromFloat(39.80)), "total %s", sw.Sale.Total)
	assert.True(t, sw.Items[0].UnitPrice.Equal(promocional))
}

func TestCreateSale_PrecoZeroExplicitoVendeDeGraca(t *testing.T) {
	uc, s := newSales(t)
	gratis := decimal.Zero

	// Zero explícito é cortesia, não cai no preço de cadastro.
	sw, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items: []sales.SaleItemInput{
			{ProductID: "p-1", Quantity: dec(1), UnitPrice: &gratis},
		},
	})
	require.NoError(t, err)

	assert.True(t, sw.Sale.Total.IsZero(), "total %s", sw.Sale.Total)
	assert.True(t, sw.Items[0].UnitPrice.IsZero())
	assert.True(t, sw.Items[0].LineTotal.IsZero())

	// A linha grátis ainda baixa estoque e registra o movimento.
	assert.True(t, s.products["p-1"].Stock.Equal(dec(9)))
	require.Len(t, s.movements, 1)
}

func TestCreateSale_PrecoNegativoInvalido(t *testing.T) {
	uc, _ := newSales(t)
	negativo := decimal.NewFromInt(-1)

	_, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items: []sales.SaleItemInput{
			{ProductID: "p-1", Quantity: dec(1), UnitPrice: &negativo},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_FiadoGeraPendenciaComVencimento(t *testing.T) {
	uc, s := newSales(t)
	venc := time.Now().AddDate(0, 0, 15)

	sw, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCredit,
		DueDate:       &venc,
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Consumidor final", sw.Sale.CustomerName)

	require.Len(t, s.financials, 1)
	entry := s.financials[0]
	assert.Equal(t, entity.FinancialPending, entry.Status)
	assert.True(t, entry.PaidAmount.IsZero())
	assert.True(t, entry.DueDate.Equal(venc))
}

func TestCreateSale_FiadoSemVencimentoUsa30Dias(t *testing.T) {
	uc, s := newSales(t)

	_, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCredit,
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(1)}},
	})
	require.NoError(t, err)

	require.Len(t, s.financials, 1)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), s.financials[0].DueDate, 5*time.Second)
}

func TestCreateSale_EstoqueInsuficienteDesfazTudo(t *testing.T) {
	uc, s := newSales(t)

	// p-2 tem estoque 4; a segunda linha pede 5 e deve derrubar a venda toda.
	_, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items: []sales.SaleItemInput{
			{ProductID: "p-1", Quantity: dec(2)},
			{ProductID: "p-2", Quantity: dec(5)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.products["p-1"].Stock.Equal(dec(10)), "estoque da primeira linha restaurado")
	assert.True(t, s.products["p-2"].Stock.Equal(dec(4)))
	assert.Empty(t, s.movements)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.saleItems)
	assert.Empty(t, s.financials)
}

func TestCreateSale_ValidacoesDeEntrada(t *testing.T) {
	uc, _ := newSales(t)
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venda sem itens")

	_, err = uc.CreateSale(ctx, "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: "pix",
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "forma de pagamento desconhecida")

	_, err = uc.CreateSale(ctx, "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(0)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade zero")
}

func TestCreateSale_ClienteDeOutraEmpresa(t *testing.T) {
	uc, _ := newSales(t)
	customerID := "c-outra"

	_, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		CustomerID:    &customerID,
		PaymentMethod: entity.SalePaymentCash,
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateSale_VendedorDeOutraEmpresa(t *testing.T) {
	uc, s := newSales(t)
	s.users["u-2"] = &entity.User{ID: "u-2", CompanyID: "co-2", Name: "Beto"}

	_, err := uc.CreateSale(context.Background(), "co-1", "u-2", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReceipt_ValidaEmpresaDaVenda(t *testing.T) {
	uc, _ := newSales(t)

	sw, err := uc.CreateSale(context.Background(), "co-1", "u-1", sales.CreateSaleInput{
		PaymentMethod: entity.SalePaymentCash,
		Items:         []sales.SaleItemInput{{ProductID: "p-1", Quantity: dec(1)}},
	})
	require.NoError(t, err)

	pdf, err := uc.Receipt(context.Background(), "co-1", sw.Sale.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = uc.Receipt(context.Background(), "co-2", sw.Sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
