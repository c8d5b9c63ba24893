package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/auth"
	"github.com/gestorpro/gestor-api/internal/application/dto"
)

// AuthHandler trata cadastro e login (rotas públicas).
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup godoc
// @Summary      Cadastrar empresa e usuário administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "Dados do cadastro"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Signup(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Autenticar usuário
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciais"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
