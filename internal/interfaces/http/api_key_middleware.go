package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/auth"
	"github.com/SaeedBadree/TBSL-ERP/internal/application/dto"
	"github.com/SaeedBadree/TBSL-ERP/internal/domain"
)

// LocalAPIKeyID key de Locals con el id de la API key validada.
const LocalAPIKeyID = "api_key_id"

// APIKeyMiddleware valida el header X-API-Key contra el hash almacenado y
// exige los scopes indicados. Pensado para integraciones máquina a máquina
// (POS, e-commerce) que no usan JWT.
func APIKeyMiddleware(authUC *auth.UseCase, scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-API-Key")
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_API_KEY", Message: "header X-API-Key requerido"})
		}
		key, err := authUC.ValidateAPIKey(c.Context(), raw, scopes)
		if err != nil {
			if errors.Is(err, domain.ErrMissingScope) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "MISSING_SCOPE", Message: "la clave no concede el scope requerido"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "clave inválida o revocada"})
		}
		c.Locals(LocalAPIKeyID, key.ID)
		return c.Next()
	}
}
