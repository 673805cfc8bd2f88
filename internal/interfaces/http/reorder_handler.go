package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/inventory"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// ReorderHandler administra las reglas de reorden (solo MANAGER/ADMIN).
type ReorderHandler struct {
	uc *inventory.RuleAdminUseCase
}

// NewReorderHandler construye el handler.
func NewReorderHandler(uc *inventory.RuleAdminUseCase) *ReorderHandler {
	return &ReorderHandler{uc: uc}
}

func ruleInputFromRequest(in dto.ReorderRuleRequest) inventory.RuleInput {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return inventory.RuleInput{
		ItemID:              in.ItemID,
		LocationID:          in.LocationID,
		MinLevel:            in.MinLevel,
		MaxLevel:            in.MaxLevel,
		ReorderQty:          in.ReorderQty,
		PreferredSupplierID: in.PreferredSupplierID,
		LeadTimeDays:        in.LeadTimeDays,
		Active:              active,
	}
}

// Create godoc
// @Summary      Crear regla de reorden
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderRuleRequest  true  "regla"
// @Success      201   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reorder/rules [post]
func (h *ReorderHandler) Create(c *fiber.Ctx) error {
	var in dto.ReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule, err := h.uc.Create(c.Context(), ruleInputFromRequest(in))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_level/max_level inválidos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una regla para ese (item, location)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToReorderRuleResponse(rule))
}

// List godoc
// @Summary      Listar reglas de reorden
// @Tags         reorder
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}  dto.ReorderRuleResponse
// @Router       /api/reorder/rules [get]
func (h *ReorderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	rules, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ReorderRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, dto.ToReorderRuleResponse(r))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar regla de reorden
// @Tags         reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Rule ID"
// @Param        body  body  dto.ReorderRuleRequest  true  "regla"
// @Success      200   {object}  dto.ReorderRuleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reorder/rules/{id} [put]
func (h *ReorderHandler) Update(c *fiber.Ctx) error {
	var in dto.ReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule, err := h.uc.Update(c.Context(), c.Params("id"), ruleInputFromRequest(in))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_level/max_level inválidos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una regla para ese (item, location)"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToReorderRuleResponse(rule))
}

// Delete godoc
// @Summary      Borrar regla de reorden
// @Tags         reorder
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Rule ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reorder/rules/{id} [delete]
func (h *ReorderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
