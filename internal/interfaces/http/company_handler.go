package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
)

// CompanyHandler trata a empresa da sessão (protegido).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler constrói o handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obter a empresa da sessão
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetCompanyID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar a empresa da sessão
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
