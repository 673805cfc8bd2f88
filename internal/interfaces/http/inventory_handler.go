package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/inventory"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// InventoryHandler maneja el libro de inventario: movimientos, balances y
// el tablero de bajo stock.
type InventoryHandler struct {
	poster   *inventory.StockPoster
	balances *inventory.BalancesUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(poster *inventory.StockPoster, balances *inventory.BalancesUseCase) *InventoryHandler {
	return &InventoryHandler{poster: poster, balances: balances}
}

// PostMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Idempotente por (ref_type, ref_id, movement_type, item_id):
//               repetir la misma petición devuelve el movimiento original sin duplicar.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) PostMovement(c *fiber.Ctx) error {
	var in dto.PostMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.poster.PostMovement(c.Context(), inventory.PostMovementInput{
		ItemID:       in.ItemID,
		LocationID:   in.LocationID,
		MovementType: in.MovementType,
		QtyDelta:     in.QtyDelta,
		UnitCost:     in.UnitCost,
		RefType:      in.RefType,
		RefID:        in.RefID,
		Details:      in.Details,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un (item, location)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  true   "Item ID"
// @Param        location_id  query  string  true   "Location ID"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	locationID := c.Query("location_id")
	if itemID == "" || locationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id y location_id requeridos"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.balances.Movements(c.Context(), itemID, locationID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// ListBalances godoc
// @Summary      Balances por (item, location)
// @Description  Disponible = SUM(qty_delta) del libro; incluye los umbrales de
//               la regla de reorden cuando existe.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        search       query  string  false  "Buscar por nombre o código"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.balances.Balances(c.Context(), c.Query("location_id"), c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.ToBalanceResponse(b))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Tablero de bajo stock
// @Description  Pares (item, location) con regla activa cuyo disponible está en
//               o bajo el mínimo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.balances.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.ToBalanceResponse(b))
	}
	return c.JSON(fiber.Map{"total": len(out), "low_stock": out})
}
