package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/gestorpro/gestor-api/internal/application/access"
	appanalytics "github.com/gestorpro/gestor-api/internal/application/analytics"
	"github.com/gestorpro/gestor-api/internal/application/auth"
	"github.com/gestorpro/gestor-api/internal/application/billing"
	"github.com/gestorpro/gestor-api/internal/application/finance"
	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/application/sales"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
	"github.com/gestorpro/gestor-api/internal/infrastructure/payment"
	infrapdf "github.com/gestorpro/gestor-api/internal/infrastructure/pdf"
	"github.com/gestorpro/gestor-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestorpro/gestor-api/internal/interfaces/http"
	"github.com/gestorpro/gestor-api/pkg/config"
	"github.com/gestorpro/gestor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	financialRepo := postgres.NewFinancialEntryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gate := access.NewGate(cfg.App.SuperAdminEmail)

	planAmount, err := decimal.NewFromString(cfg.Gateway.PlanAmount)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Gateway.PlanAmount).Msg("GATEWAY_PLAN_AMOUNT inválido")
	}
	gateway := payment.NewAsaasClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Env)
	subscriptionUC := billing.NewSubscriptionUseCase(subRepo, companyRepo, gateway, planAmount)

	authUC := auth.NewUseCase(txRunner, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, movementRepo)
	financeUC := finance.NewUseCase(financialRepo)
	receipts := infrapdf.NewReceiptGenerator()
	saleUC := sales.NewUseCase(txRunner, ledgerUC, productRepo, customerRepo, userRepo, saleRepo, companyRepo, receipts)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GestorPro API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		LedgerUC:       ledgerUC,
		SaleUC:         saleUC,
		FinanceUC:      financeUC,
		SubscriptionUC: subscriptionUC,
		DashboardUC:    dashboardUC,
		Gate:           gate,
		SubRepo:        subRepo,
		JWTSecret:      cfg.JWT.Secret,
		WebhookToken:   cfg.Gateway.WebhookToken,
		Logger:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
