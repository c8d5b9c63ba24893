package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/domain/entity"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação, entregando repositórios atados
// a ela. A venda, os itens, as saídas de estoque e o lançamento financeiro são
// todos gravados pelo mesmo fn: ou tudo entra, ou nada entra.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		financialRepo repository.FinancialEntryRepository,
	) error) error
}

// StockLedger é a fatia do livro de estoque que a venda consome: uma saída
// por item, registrada nos repositórios da transação corrente.
type StockLedger interface {
	RecordSaleExitInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		companyID, productID, sellerName, userID string,
		quantity decimal.Decimal,
		saleID string,
	) (*entity.StockMovement, error)
}

// ReceiptGenerator monta o comprovante de venda em PDF.
type ReceiptGenerator interface {
	Generate(company *entity.Company, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error)
}
