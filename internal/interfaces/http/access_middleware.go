package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/access"
	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain/repository"
)

// RequireActiveSubscription barra requisições de empresas sem assinatura
// vigente. A busca da assinatura acontece aqui; a decisão é do gate, que é
// fail-closed: erro na consulta nega o acesso em vez de liberá-lo.
func RequireActiveSubscription(gate *access.Gate, subRepo repository.SubscriptionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := access.Identity{
			Email:     GetEmail(c),
			CompanyID: GetCompanyID(c),
		}
		sub, err := subRepo.GetByCompany(c.Context(), id.CompanyID)
		decision := gate.CanUseApp(id, sub, err, time.Now())
		if decision.Allowed {
			return c.Next()
		}
		if decision.Reason == access.ReasonUnauthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "sessão sem email"})
		}
		return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION_REQUIRED", Message: decision.Reason})
	}
}
