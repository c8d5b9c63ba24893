package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/access"
	"github.com/gestorpro/gestor-api/internal/application/analytics"
	"github.com/gestorpro/gestor-api/internal/application/auth"
	"github.com/gestorpro/gestor-api/internal/application/billing"
	"github.com/gestorpro/gestor-api/internal/application/finance"
	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/application/sales"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
	"github.com/gestorpro/gestor-api/pkg/logger"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	CompanyUC      *usecase.CompanyUseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	LedgerUC       *ledger.UseCase
	SaleUC         *sales.UseCase
	FinanceUC      *finance.UseCase
	SubscriptionUC *billing.SubscriptionUseCase
	DashboardUC    *analytics.DashboardUseCase
	Gate           *access.Gate
	SubRepo        repository.SubscriptionRepository
	JWTSecret      string
	WebhookToken   string
	Logger         *logger.Logger
}

// Router registra as rotas da API.
//
// Três camadas de proteção, de fora para dentro:
//  1. públicas: auth, webhook do gateway e health;
//  2. autenticadas (Bearer): estado da assinatura e checkout — precisam
//     funcionar mesmo com assinatura vencida, senão ninguém consegue pagar;
//  3. assinatura vigente: todo o restante do app.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Webhook do gateway (público; valida token próprio no header)
	webhookHandler := NewWebhookHandler(deps.SubscriptionUC, deps.WebhookToken, deps.Logger)
	app.Post("/webhooks/payment", webhookHandler.HandlePayment)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Autenticado, sem exigir assinatura vigente
	authenticated := api.Group("/", AuthMiddleware(deps.JWTSecret))

	subHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.Gate)
	authenticated.Get("/subscription", subHandler.Status)
	authenticated.Get("/subscription/status", subHandler.Status)
	authenticated.Post("/subscription/checkout", subHandler.Checkout)

	// Ações manuais do super-administrador
	admin := authenticated.Group("/admin", RequireSuperAdmin(deps.Gate))
	admin.Post("/subscriptions/:company_id/grant", subHandler.Grant)
	admin.Post("/subscriptions/:company_id/block", subHandler.Block)
	admin.Post("/subscriptions/:company_id/unblock", subHandler.Unblock)

	// Autenticado + assinatura vigente
	protected := authenticated.Group("/", RequireActiveSubscription(deps.Gate, deps.SubRepo))

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Get)
	protected.Put("/company", companyHandler.Update)

	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Archive)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	stock := protected.Group("/stock")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	stock.Post("/entries", ledgerHandler.RecordEntry)
	stock.Post("/adjustments", ledgerHandler.RecordAdjustment)
	stock.Get("/kardex", ledgerHandler.Kardex)
	stock.Delete("/movements/:id", ledgerHandler.DeleteMovement)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	financeGroup := protected.Group("/finance")
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	financeGroup.Post("/entries", financeHandler.Create)
	financeGroup.Get("/entries", financeHandler.List)
	financeGroup.Get("/entries/:id", financeHandler.GetByID)
	financeGroup.Post("/entries/:id/payments", financeHandler.RegisterPayment)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
