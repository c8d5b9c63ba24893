package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/access"
	"github.com/gestorpro/gestor-api/internal/application/billing"
	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// SubscriptionHandler trata o estado da assinatura, o checkout e as ações
// manuais do super-administrador.
type SubscriptionHandler struct {
	uc   *billing.SubscriptionUseCase
	gate *access.Gate
}

// NewSubscriptionHandler constrói o handler.
func NewSubscriptionHandler(uc *billing.SubscriptionUseCase, gate *access.Gate) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, gate: gate}
}

// Status godoc
// @Summary      Estado da assinatura da empresa da sessão
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Router       /api/subscription [get]
func (h *SubscriptionHandler) Status(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	sub, err := h.uc.GetByCompany(c.Context(), companyID)

	id := access.Identity{Email: GetEmail(c), CompanyID: companyID}
	decision := h.gate.CanUseApp(id, sub, err, time.Now())

	resp := dto.SubscriptionResponse{
		CompanyID:  companyID,
		Status:     entity.SubscriptionInactive,
		Allowed:    decision.Allowed,
		DenyReason: decision.Reason,
	}
	if sub != nil {
		resp.ID = sub.ID
		resp.Status = sub.Status
		resp.CurrentPeriodEnd = sub.CurrentPeriodEnd
		resp.ManualOverride = sub.ManualOverride
		resp.BlockedReason = sub.BlockedReason
	}
	return c.JSON(resp)
}

// Checkout godoc
// @Summary      Criar cobrança da assinatura no gateway
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "CPF/CNPJ do pagador"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/subscription/checkout [post]
func (h *SubscriptionHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	invoiceURL, err := h.uc.CreateCheckout(c.Context(), GetCompanyID(c), in.TaxID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{InvoiceURL: invoiceURL})
}

// RequireSuperAdmin restringe as ações manuais ao super-administrador.
func RequireSuperAdmin(gate *access.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.IsSuperAdmin(GetEmail(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "ação restrita ao super-administrador"})
		}
		return c.Next()
	}
}

// Grant godoc
// @Summary      Conceder vigência manual (super-admin)
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        company_id  path  string  true  "ID da empresa"
// @Param        body        body  dto.GrantSubscriptionRequest  true  "Dias de vigência"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions/{company_id}/grant [post]
func (h *SubscriptionHandler) Grant(c *fiber.Ctx) error {
	var in dto.GrantSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	sub, err := h.uc.ManualGrant(c.Context(), c.Params("company_id"), in.Days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toSubscriptionResponse(sub))
}

// Block godoc
// @Summary      Bloquear assinatura manualmente (super-admin)
// @Tags         subscription
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        company_id  path  string  true  "ID da empresa"
// @Param        body        body  dto.BlockSubscriptionRequest  true  "Motivo do bloqueio"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions/{company_id}/block [post]
func (h *SubscriptionHandler) Block(c *fiber.Ctx) error {
	var in dto.BlockSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	sub, err := h.uc.ManualBlock(c.Context(), c.Params("company_id"), in.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toSubscriptionResponse(sub))
}

// Unblock godoc
// @Summary      Desbloquear assinatura (super-admin)
// @Tags         subscription
// @Security     Bearer
// @Produce      json
// @Param        company_id  path  string  true  "ID da empresa"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/subscriptions/{company_id}/unblock [post]
func (h *SubscriptionHandler) Unblock(c *fiber.Ctx) error {
	sub, err := h.uc.ManualUnblock(c.Context(), c.Params("company_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toSubscriptionResponse(sub))
}

func toSubscriptionResponse(sub *entity.Subscription) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:               sub.ID,
		CompanyID:        sub.CompanyID,
		Status:           sub.Status,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
		ManualOverride:   sub.ManualOverride,
		BlockedReason:    sub.BlockedReason,
		Allowed:          sub.IsCurrent(time.Now()),
	}
}
