package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/auth"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// AuthHandler maneja login y administración de claves de integración.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Autenticación de usuario interno
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, user, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "BAD_CREDENTIALS", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := GetUserID(c)
	user, err := h.uc.GetUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToUserResponse(user))
}

// CreateAPIKey godoc
// @Summary      Emitir clave de integración
// @Description  La clave en claro se devuelve una sola vez; después solo vive el hash.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAPIKeyRequest  true  "name y scopes"
// @Success      201   {object}  dto.CreateAPIKeyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/api-keys [post]
func (h *AuthHandler) CreateAPIKey(c *fiber.Ctx) error {
	var in dto.CreateAPIKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name requerido"})
	}
	raw, key, err := h.uc.CreateAPIKey(c.Context(), in.Name, in.Scopes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateAPIKeyResponse{
		ID:     key.ID,
		Name:   key.Name,
		Key:    raw,
		Scopes: key.Scopes,
	})
}

// RevokeAPIKey godoc
// @Summary      Revocar clave de integración
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "API key ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/api-keys/{id} [delete]
func (h *AuthHandler) RevokeAPIKey(c *fiber.Ctx) error {
	if err := h.uc.RevokeAPIKey(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "clave no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
