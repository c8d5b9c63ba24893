package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/analytics"
)

// DashboardHandler trata o resumo gerencial (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumo do dia e do mês (vendas, margem, recebíveis, estoque baixo)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), GetCompanyID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
