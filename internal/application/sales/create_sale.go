package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// Prazo padrão de vencimento de uma venda fiado sem data informada.
const defaultCreditDays = 30

// SaleItemInput é uma linha do pedido de venda. UnitPrice nil usa o preço de
// venda cadastrado no produto; zero explícito vale como cortesia (item grátis).
type SaleItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

// CreateSaleInput é o pedido de venda completo.
type CreateSaleInput struct {
	CustomerID    *string
	PaymentMethod string // cash, credit
	DueDate       *time.Time
	Items         []SaleItemInput
}

// SaleWithItems agrega a venda com suas linhas, para resposta e comprovante.
type SaleWithItems struct {
	Sale  *entity.Sale
	Items []*entity.SaleItem
}

// UseCase cria vendas e emite comprovantes. Completar uma venda grava, numa
// única transação: a venda, seus itens, uma saída de estoque por item e a
// conta a receber correspondente (quitada à vista, pendente no fiado).
type UseCase struct {
	txRunner     TxRunner
	ledger       StockLedger
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	saleRepo     repository.SaleRepository
	companyRepo  repository.CompanyRepository
	receipts     ReceiptGenerator
}

// NewUseCase constrói o caso de uso de vendas.
func NewUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	receipts ReceiptGenerator,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		saleRepo:     saleRepo,
		companyRepo:  companyRepo,
		receipts:     receipts,
	}
}

// CreateSale valida o pedido, calcula totais e comissão e grava tudo em uma
// transação. O percentual de comissão do vendedor é congelado na venda; mudar
// a comissão depois não reescreve vendas passadas.
func (uc *UseCase) CreateSale(ctx context.Context, companyID, userID string, in CreateSaleInput) (*SaleWithItems, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != entity.SalePaymentCash && in.PaymentMethod != entity.SalePaymentCredit {
		return nil, domain.ErrInvalidInput
	}

	seller, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("buscando vendedor: %w", err)
	}
	if seller == nil || seller.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	customerName := "Consumidor final"
	if in.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("buscando cliente: %w", err)
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		if customer.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		customerName = customer.Name
	}

	// Valida produtos e resolve preços fora da transação (só leitura).
	type line struct {
		product   *entity.Product
		quantity  decimal.Decimal
		unitPrice decimal.Decimal
	}
	lines := make([]line, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("buscando produto: %w", err)
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		unitPrice := product.SalePrice
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}
		lines = append(lines, line{product: product, quantity: item.Quantity, unitPrice: unitPrice})
		total = total.Add(unitPrice.Mul(item.Quantity))
	}
	total = total.Round(2)

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SellerID:      seller.ID,
		SellerName:    seller.Name,
		CustomerID:    in.CustomerID,
		CustomerName:  customerName,
		PaymentMethod: in.PaymentMethod,
		Total:         total,
		CommissionPct: seller.CommissionPct,
		CommissionAmt: total.Mul(seller.CommissionPct).Div(decimal.NewFromInt(100)).Round(2),
		CreatedAt:     now,
	}

	items := make([]*entity.SaleItem, 0, len(lines))
	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		financialRepo repository.FinancialEntryRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return fmt.Errorf("gravando venda: %w", err)
		}
		for _, l := range lines {
			if _, err := uc.ledger.RecordSaleExitInTx(
				movRepo, productRepo,
				companyID, l.product.ID, seller.Name, seller.ID,
				l.quantity, sale.ID,
			); err != nil {
				return err
			}
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: l.product.ID,
				SKU:       l.product.SKU,
				Name:      l.product.Name,
				Quantity:  l.quantity,
				UnitPrice: l.unitPrice,
				LineTotal: l.unitPrice.Mul(l.quantity).Round(2),
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return fmt.Errorf("gravando item da venda: %w", err)
			}
			items = append(items, item)
		}
		return financialRepo.Create(uc.financialEntryFor(sale, in.DueDate, now))
	})
	if err != nil {
		return nil, err
	}
	return &SaleWithItems{Sale: sale, Items: items}, nil
}

// financialEntryFor monta a conta a receber da venda: à vista nasce quitada,
// fiado nasce pendente com vencimento (padrão 30 dias se não informado).
func (uc *UseCase) financialEntryFor(sale *entity.Sale, dueDate *time.Time, now time.Time) *entity.FinancialEntry {
	entry := &entity.FinancialEntry{
		ID:          uuid.New().String(),
		CompanyID:   sale.CompanyID,
		Type:        entity.FinancialReceivable,
		Description: fmt.Sprintf("Venda para %s", sale.CustomerName),
		TotalAmount: sale.Total,
		EntityName:  sale.CustomerName,
		SaleID:      &sale.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if sale.PaymentMethod == entity.SalePaymentCash {
		entry.PaidAmount = sale.Total
		entry.Status = entity.FinancialPaid
		entry.DueDate = now
		return entry
	}
	entry.PaidAmount = decimal.Zero
	entry.Status = entity.FinancialPending
	entry.DueDate = now.AddDate(0, 0, defaultCreditDays)
	if dueDate != nil {
		entry.DueDate = *dueDate
	}
	return entry
}

// GetSale devolve a venda com itens, validando que pertence à empresa.
func (uc *UseCase) GetSale(ctx context.Context, companyID, saleID string) (*SaleWithItems, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, fmt.Errorf("buscando venda: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, fmt.Errorf("buscando itens da venda: %w", err)
	}
	return &SaleWithItems{Sale: sale, Items: items}, nil
}

// ListSales devolve as vendas da empresa, mais recentes primeiro.
func (uc *UseCase) ListSales(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return uc.saleRepo.ListByCompany(companyID, limit, offset)
}

// Receipt gera o comprovante da venda em PDF.
func (uc *UseCase) Receipt(ctx context.Context, companyID, saleID string) ([]byte, error) {
	sw, err := uc.GetSale(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, fmt.Errorf("buscando empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	pdf, err := uc.receipts.Generate(company, sw.Sale, sw.Items)
	if err != nil {
		return nil, fmt.Errorf("gerando comprovante: %w", err)
	}
	return pdf, nil
}
