package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpro/gestor-api/internal/application/dto"
	"github.com/gestorpro/gestor-api/internal/application/sales"
	"github.com/gestorpro/gestor-api/internal/domain/entity"
)

// SaleHandler trata vendas e comprovantes (protegido).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler constrói o handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Criar venda
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Pedido de venda"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "corpo inválido")
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	out, err := h.uc.CreateSale(c.Context(), GetCompanyID(c), GetUserID(c), sales.CreateSaleInput{
		CustomerID:    in.CustomerID,
		PaymentMethod: in.PaymentMethod,
		DueDate:       in.DueDate,
		Items:         items,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(out.Sale, out.Items))
}

// GetByID godoc
// @Summary      Obter venda por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	out, err := h.uc.GetSale(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toSaleResponse(out.Sale, out.Items))
}

// List godoc
// @Summary      Listar vendas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.ListSales(c.Context(), GetCompanyID(c), limit, offset)
	if err != nil {
		return fail(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSaleResponse(s, nil))
	}
	return c.JSON(dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Receipt godoc
// @Summary      Comprovante de venda em PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id é obrigatório")
	}
	pdfBytes, err := h.uc.Receipt(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprovante-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		SellerID:      s.SellerID,
		SellerName:    s.SellerName,
		CustomerID:    s.CustomerID,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		CommissionPct: s.CommissionPct,
		CommissionAmt: s.CommissionAmt,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
