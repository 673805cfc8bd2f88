package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/alerts"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain/repository"
)

// AlertHandler maneja el ciclo de vida de alertas: listar, ack y resolve.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "OPEN | ACK | DONE"
// @Param        type         query  string  false  "LOW_STOCK, NEGATIVE_STOCK, ..."
// @Param        severity     query  string  false  "INFO | WARNING | CRITICAL"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        limit        query  int     false  "Límite"
// @Param        offset       query  int     false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, total, err := h.uc.List(c.Context(), repository.AlertFilter{
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		Severity:   c.Query("severity"),
		LocationID: c.Query("location_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAlertResponse(a))
	}
	return c.JSON(fiber.Map{
		"alerts": out,
		"page":   dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Ack godoc
// @Summary      Reconocer alerta
// @Description  OPEN → ACK. Transición idempotente de último escritor.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Alert ID"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/ack [post]
func (h *AlertHandler) Ack(c *fiber.Ctx) error {
	alert, err := h.uc.Ack(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToAlertResponse(alert))
}

// Resolve godoc
// @Summary      Resolver alerta
// @Description  OPEN o ACK → DONE.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Alert ID"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	alert, err := h.uc.Resolve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToAlertResponse(alert))
}
