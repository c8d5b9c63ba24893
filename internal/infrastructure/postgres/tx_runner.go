package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestorpro/gestor-api/internal/application/auth"
	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/application/sales"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre a transação do livro de estoque: movimentos e produtos atados à
// mesma tx, commit no sucesso e rollback em qualquer erro.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSignup abre a transação de cadastro: empresa, assinatura e usuário admin
// nascem juntos ou não nascem.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewCompanyRepository(tx),
		NewSubscriptionRepository(tx),
		NewUserRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale abre a transação de venda: venda, itens, saídas de estoque e
// lançamento financeiro são um bloco só.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	financialRepo repository.FinancialEntryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewStockMovementRepository(tx),
		NewProductRepository(tx),
		NewSaleRepository(tx),
		NewFinancialEntryRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
