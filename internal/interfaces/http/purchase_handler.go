package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/purchasing"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// PurchaseHandler maneja recepciones de mercancía y órdenes de compra.
type PurchaseHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// CreateReceipt godoc
// @Summary      Crear recepción de mercancía en borrador
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "recepción"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchasing/receipts [post]
func (h *PurchaseHandler) CreateReceipt(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := purchasing.CreateReceiptInput{
		GrnNo:      in.GrnNo,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, purchasing.CreateReceiptLineInput{
			ItemID:   l.ItemID,
			Qty:      l.Qty,
			UnitCost: l.UnitCost,
		})
	}
	grn, err := h.uc.CreateReceipt(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de recepción inválidos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "grn_no ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReceiptResponse(grn))
}

// GetReceipt godoc
// @Summary      Consultar recepción con líneas
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "GRN ID"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchasing/receipts/{id} [get]
func (h *PurchaseHandler) GetReceipt(c *fiber.Ctx) error {
	grn, err := h.uc.GetReceipt(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recepción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToReceiptResponse(grn))
}

// ListReceipts godoc
// @Summary      Listar recepciones
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft | posted"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}  dto.ReceiptResponse
// @Router       /api/purchasing/receipts [get]
func (h *PurchaseHandler) ListReceipts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.ListReceipts(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ReceiptResponse, 0, len(list))
	for _, grn := range list {
		out = append(out, dto.ToReceiptResponse(grn))
	}
	return c.JSON(out)
}

// PostReceipt godoc
// @Summary      Postear recepción al inventario
// @Description  Genera un movimiento PURCHASE_RECEIPT positivo por línea y marca
//               la recepción POSTED. Re-postear es un no-op.
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "GRN ID"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchasing/receipts/{id}/post [post]
func (h *PurchaseHandler) PostReceipt(c *fiber.Ctx) error {
	grn, err := h.uc.PostReceipt(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recepción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToReceiptResponse(grn))
}

// ReturnReceipt godoc
// @Summary      Postear devolución a proveedor
// @Description  Genera movimientos PURCHASE_RETURN negativos por línea sin
//               cambiar el estado de la recepción.
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "GRN ID"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchasing/receipts/{id}/return [post]
func (h *PurchaseHandler) ReturnReceipt(c *fiber.Ctx) error {
	grn, err := h.uc.PostReturn(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recepción no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToReceiptResponse(grn))
}

// CreateOrder godoc
// @Summary      Crear orden de compra
// @Tags         purchasing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "orden"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchasing/orders [post]
func (h *PurchaseHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	po, err := h.uc.CreateOrder(c.Context(), purchasing.CreateOrderInput{
		PoNo:       in.PoNo,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de orden inválidos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "po_no ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(po))
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "open | closed | cancelled"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/purchasing/orders [get]
func (h *PurchaseHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.ListOrders(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, dto.ToOrderResponse(po))
	}
	return c.JSON(out)
}

// CloseOrder godoc
// @Summary      Cerrar orden de compra
// @Description  OPEN → CLOSED. Cerrar una orden ya cerrada es un no-op.
// @Tags         purchasing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "PO ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchasing/orders/{id}/close [post]
func (h *PurchaseHandler) CloseOrder(c *fiber.Ctx) error {
	po, err := h.uc.CloseOrder(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToOrderResponse(po))
}
