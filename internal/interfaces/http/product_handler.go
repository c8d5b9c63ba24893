package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
)

// ProductHandler trata o CRUD de produtos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler constrói o handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Criar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Dados do produto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Obter produto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar produtos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit     query  int   false  "Limite"  default(20)
// @Param        offset    query  int   false  "Offset"  default(0)
// @Param        low_only  query  bool  false  "Somente abaixo do estoque mínimo"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	lowOnly := c.QueryBool("low_only", false)
	out, err := h.uc.List(c.Context(), GetCompanyID(c), page, lowOnly)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar produto (estoque e custo só mudam pelo livro de estoque)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.UpdateProductRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
