package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/application/authz"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
)

// RequirePermission verifica "modulo:accion" contra el rol vivo del usuario.
// Si la request autenticó por API key con snapshot de permisos, decide el
// snapshot congelado en lugar del rol. Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermission(required string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
		}

		if key := GetAPIKey(c); key != nil && key.HasSnapshot() {
			if !key.AllowsPermission(required) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:     "INSUFFICIENT_PERMISSIONS",
					Message:  "la API key no tiene el permiso requerido",
					Required: required,
				})
			}
			return c.Next()
		}

		return respond(c, authz.Permission(user, GetRole(c), required))
	}
}

// RequireRole restringe la ruta a los roles nombrados. El rol admin siempre pasa.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
		}
		return respond(c, authz.RoleAllowed(GetRole(c), allowed...))
	}
}

// RequireSuperAdmin restringe la ruta a los correos de la lista blanca de configuración.
func RequireSuperAdmin(allowlist []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
		}
		return respond(c, authz.SuperAdmin(user, allowlist))
	}
}

// ownerLookup resuelve el dueño de un recurso por su ID.
type ownerLookup func(c *fiber.Ctx, resourceID string) (string, error)

// RequireOwnership verifica que el recurso identificado por el parámetro de
// ruta pertenezca al usuario autenticado. Los admin pasan sin verificar dueño.
func RequireOwnership(param string, lookup ownerLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "identidad no resuelta"})
		}

		ownerID, err := lookup(c, c.Params(param))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RESOURCE_NOT_FOUND", Message: "recurso no encontrado"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERMISSION_CHECK_ERROR", Message: "no se pudo verificar el recurso"})
		}

		return respond(c, authz.Ownership(user, GetRole(c), ownerID))
	}
}

func respond(c *fiber.Ctx, d authz.Decision) error {
	if d.Allowed {
		return c.Next()
	}
	return c.Status(d.Status).JSON(dto.ErrorResponse{
		Code:     d.Code,
		Message:  d.Message,
		Required: d.Required,
		Current:  d.Current,
	})
}
