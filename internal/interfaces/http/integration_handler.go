package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/sales"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// IntegrationHandler expone la ingesta máquina a máquina (POS, e-commerce)
// protegida por API key con scopes, sin JWT de usuario.
type IntegrationHandler struct {
	salesUC *sales.UseCase
}

// NewIntegrationHandler construye el handler.
func NewIntegrationHandler(salesUC *sales.UseCase) *IntegrationHandler {
	return &IntegrationHandler{salesUC: salesUC}
}

// CreateOrder godoc
// @Summary      Ingesta de pedido externo
// @Description  Crea la factura en borrador y la postea al inventario en el
//               mismo request. La idempotencia del libro protege los reintentos
//               del integrador.
// @Tags         integrations
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string                    true  "Clave de integración con scope orders:write"
// @Param        body       body    dto.CreateInvoiceRequest  true  "pedido"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/integrations/orders [post]
func (h *IntegrationHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := sales.CreateInput{
		InvoiceNo:  in.InvoiceNo,
		CustomerID: in.CustomerID,
		LocationID: in.LocationID,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, sales.CreateLineInput{
			ItemID:           l.ItemID,
			Qty:              l.Qty,
			UnitPrice:        l.UnitPrice,
			Discount:         l.Discount,
			Tax:              l.Tax,
			UnitCostSnapshot: l.UnitCostSnapshot,
		})
	}
	inv, err := h.salesUC.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de pedido inválidos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "invoice_no ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	posted, err := h.salesUC.PostInvoice(c.Context(), inv.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInvoiceResponse(posted))
}
