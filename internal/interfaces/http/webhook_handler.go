package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/webhooks"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// WebhookHandler administra los endpoints receptores de eventos (solo ADMIN).
type WebhookHandler struct {
	uc *webhooks.EndpointAdminUseCase
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(uc *webhooks.EndpointAdminUseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func endpointInputFromRequest(in dto.WebhookEndpointRequest) webhooks.EndpointInput {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return webhooks.EndpointInput{
		Name:   in.Name,
		URL:    in.URL,
		Secret: in.Secret,
		Events: in.Events,
		Active: active,
	}
}

// Create godoc
// @Summary      Registrar endpoint de webhook
// @Tags         webhooks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WebhookEndpointRequest  true  "endpoint"
// @Success      201   {object}  dto.WebhookEndpointResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/webhooks/endpoints [post]
func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	var in dto.WebhookEndpointRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ep, err := h.uc.Create(c.Context(), endpointInputFromRequest(in))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, url y secret requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWebhookEndpointResponse(ep))
}

// List godoc
// @Summary      Listar endpoints de webhook
// @Tags         webhooks
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WebhookEndpointResponse
// @Router       /api/webhooks/endpoints [get]
func (h *WebhookHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.WebhookEndpointResponse, 0, len(list))
	for _, ep := range list {
		out = append(out, dto.ToWebhookEndpointResponse(ep))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar endpoint de webhook
// @Tags         webhooks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Endpoint ID"
// @Param        body  body  dto.WebhookEndpointRequest  true  "endpoint"
// @Success      200   {object}  dto.WebhookEndpointResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/webhooks/endpoints/{id} [put]
func (h *WebhookHandler) Update(c *fiber.Ctx) error {
	var in dto.WebhookEndpointRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ep, err := h.uc.Update(c.Context(), c.Params("id"), endpointInputFromRequest(in))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "endpoint no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, url y secret requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToWebhookEndpointResponse(ep))
}

// Delete godoc
// @Summary      Borrar endpoint de webhook
// @Description  Las entregas asociadas caen en cascada.
// @Tags         webhooks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Endpoint ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/webhooks/endpoints/{id} [delete]
func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "endpoint no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
