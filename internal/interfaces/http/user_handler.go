package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/usecase"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// UserHandler trata o CRUD de usuários da empresa (somente admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler constrói o handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Criar usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Dados do usuário"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
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
// @Summary      Obter usuário por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do usuário"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar usuários da empresa
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
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
// @Summary      Atualizar usuário
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do usuário"
// @Param        body  body  dto.UpdateUserRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Arquivar usuário (desativa e libera o email para recadastro)
// @Tags         users
// @Security     Bearer
// @Param        id  path  string  true  "ID do usuário"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Archive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	if id == GetUserID(c) {
		return badRequest(c, "SELF_ARCHIVE", "não é possível arquivar o próprio usuário")
	}
	if err := h.uc.Archive(c.Context(), GetCompanyID(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequireAdmin restringe o grupo de rotas ao papel admin.
func RequireAdmin() fiber.Handler {
	return RequireRole(entity.RoleAdmin)
}
