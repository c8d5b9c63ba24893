package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/ledger"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// LedgerHandler trata o livro de estoque: entradas, ajustes e Kardex.
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler constrói o handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// RecordEntry godoc
// @Summary      Registrar entrada de fornecedor
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "Dados da entrada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/entries [post]
func (h *LedgerHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	mov, err := h.uc.RecordEntry(c.Context(), ledger.EntryInput{
		CompanyID: GetCompanyID(c),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Operator:  in.Operator,
		UnitCost:  in.UnitCost,
		Notes:     in.Notes,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// RecordAdjustment godoc
// @Summary      Registrar ajuste manual de estoque
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "Dados do ajuste"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *LedgerHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	mov, err := h.uc.RecordAdjustment(c.Context(), ledger.AdjustmentInput{
		CompanyID:  GetCompanyID(c),
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		ReasonCode: in.ReasonCode,
		Operator:   in.Operator,
		Notes:      in.Notes,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// Kardex godoc
// @Summary      Histórico de movimentos (Kardex)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtra por produto; vazio lista a empresa inteira"
// @Param        limit       query  int     false  "Limite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.KardexResponse
// @Router       /api/stock/kardex [get]
func (h *LedgerHandler) Kardex(c *fiber.Ctx) error {
	// A resposta ecoa a página efetiva, não o que veio cru na query.
	limit, offset := ledger.ClampPage(c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	entries, err := h.uc.Kardex(GetCompanyID(c), c.Query("product_id"), limit, offset)
	if err != nil {
		return fail(c, err)
	}

	items := make([]dto.KardexEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := toMovementResponse(e.Movement)
		resp.Operator = e.Operator
		resp.Notes = e.Notes
		items = append(items, dto.KardexEntryResponse{
			MovementResponse: resp,
			Kind:             e.Kind,
			PreviousStock:    e.PreviousStock,
		})
	}
	return c.JSON(dto.KardexResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// DeleteMovement godoc
// @Summary      Excluir movimento (somente admin; não recalcula o estoque)
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "ID do movimento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [delete]
func (h *LedgerHandler) DeleteMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	if err := h.uc.DeleteMovement(c.Context(), GetCompanyID(c), GetRole(c), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		NewStock:  m.NewStock,
		Reason:    m.Reason,
		Operator:  m.Operator,
		Notes:     m.Notes,
		SaleID:    m.SaleID,
		CreatedAt: m.CreatedAt,
	}
}
