package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
)

// CustomerHandler trata o CRUD de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler constrói o handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Dados do cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	out, err := h.uc.GetByID(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
