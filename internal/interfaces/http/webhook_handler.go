package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/billing"
	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/pkg/logger"
)

// WebhookHandler recebe as notificações do gateway de pagamento (rota
// pública; o gateway não carrega JWT). Responde corpo plano "ok"/"error",
// que é o contrato de confirmação do gateway.
type WebhookHandler struct {
	uc    *billing.SubscriptionUseCase
	token string // token esperado no header asaas-access-token; vazio desliga a checagem
	log   *logger.Logger
}

// NewWebhookHandler constrói o handler.
func NewWebhookHandler(uc *billing.SubscriptionUseCase, token string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, token: token, log: log}
}

// HandlePayment godoc
// @Summary      Webhook de eventos de pagamento
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Param        body  body  dto.PaymentWebhookRequest  true  "Evento do gateway"
// @Success      200  {string}  string  "ok"
// @Failure      500  {string}  string  "error"
// @Router       /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *fiber.Ctx) error {
	if h.token != "" && c.Get("asaas-access-token") != h.token {
		return c.Status(fiber.StatusUnauthorized).SendString("error")
	}

	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		h.log.Warn().Err(err).Msg("webhook: corpo ilegível")
		return c.Status(fiber.StatusBadRequest).SendString("error")
	}

	companyID := in.Payment.ExternalReference
	if err := h.uc.HandlePaymentEvent(c.Context(), in.Event, companyID); err != nil {
		h.log.Error().Err(err).
			Str("event", in.Event).
			Str("company_id", companyID).
			Msg("webhook: falha ao aplicar evento")
		return c.Status(fiber.StatusInternalServerError).SendString("error")
	}

	h.log.Info().
		Str("event", in.Event).
		Str("company_id", companyID).
		Str("payment_id", in.Payment.ID).
		Msg("webhook: evento aplicado")
	return c.SendString("ok")
}
