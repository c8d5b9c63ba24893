package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/finance"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// FinanceHandler trata contas a receber e a pagar (protegido).
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler constrói o handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Create godoc
// @Summary      Criar lançamento financeiro avulso
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFinancialEntryRequest  true  "Dados do lançamento"
// @Success      201   {object}  dto.FinancialEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finance/entries [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFinancialEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	entry, err := h.uc.Create(c.Context(), GetCompanyID(c), finance.CreateInput{
		Type:        in.Type,
		Description: in.Description,
		TotalAmount: in.TotalAmount,
		DueDate:     in.DueDate,
		EntityName:  in.EntityName,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFinancialEntryResponse(entry, entry.IsOverdue(time.Now())))
}

// RegisterPayment godoc
// @Summary      Abater pagamento em um lançamento
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do lançamento"
// @Param        body  body  dto.RegisterPaymentRequest  true  "Valor do abatimento"
// @Success      200   {object}  dto.FinancialEntryResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/finance/entries/{id}/payments [post]
func (h *FinanceHandler) RegisterPayment(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	entry, err := h.uc.RegisterPayment(c.Context(), GetCompanyID(c), id, in.Amount)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toFinancialEntryResponse(entry, entry.IsOverdue(time.Now())))
}

// GetByID godoc
// @Summary      Obter lançamento por ID
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do lançamento"
// @Success      200  {object}  dto.FinancialEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/entries/{id} [get]
func (h *FinanceHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	view, err := h.uc.GetByID(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toFinancialEntryResponse(view.Entry, view.Overdue))
}

// List godoc
// @Summary      Listar lançamentos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "receivable | payable (vazio lista ambos)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.FinancialEntryResponse
// @Router       /api/finance/entries [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	views, err := h.uc.List(c.Context(), GetCompanyID(c), c.Query("type"),
		c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return fail(c, err)
	}
	out := make([]dto.FinancialEntryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toFinancialEntryResponse(v.Entry, v.Overdue))
	}
	return c.JSON(out)
}

func toFinancialEntryResponse(e *entity.FinancialEntry, overdue bool) dto.FinancialEntryResponse {
	return dto.FinancialEntryResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Type:        e.Type,
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		PaidAmount:  e.PaidAmount,
		DueDate:     e.DueDate,
		Status:      e.Status,
		Overdue:     overdue,
		EntityName:  e.EntityName,
		SaleID:      e.SaleID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
