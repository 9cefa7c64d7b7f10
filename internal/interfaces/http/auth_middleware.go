package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/pkg/jwt"
)

// Locals keys para la identidad resuelta en Fiber.
const (
	LocalUser   = "auth_user"
	LocalRole   = "auth_role"
	LocalAPIKey = "auth_apikey"
)

// identityStore es el contrato mínimo que necesita el middleware para resolver
// la identidad viva del solicitante. Lo implementa *auth.IdentityService; el
// uso de interfaz evita el import circular y simplifica los tests.
type identityStore interface {
	UserByID(ctx context.Context, id string) (*entity.User, error)
	UserByAPIKey(ctx context.Context, key string) (*entity.User, *entity.ApiKey, error)
	RoleByID(ctx context.Context, id string) (*entity.Role, error)
}

// AuthMiddleware autentica cada request por API key (header X-API-Key o query
// api_key) o por Bearer Token JWT, y deja usuario y rol VIVOS en c.Locals.
// Los claims del token solo identifican; nunca deciden permisos: el estado y
// el rol se releen de la base en cada request.
func AuthMiddleware(jwtSecret string, store identityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key := apiKeyFrom(c); key != "" {
			return authenticateAPIKey(c, store, key)
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		// Algunos clientes serializan su estado vacío como texto literal.
		if tokenString == "" || tokenString == "null" || tokenString == "undefined" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token vacío o inválido"})
		}

		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "sesión expirada, inicie sesión de nuevo"})
			case errors.Is(err, jwt.ErrMalformed):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "JWT_MALFORMED", Message: "token malformado"})
			default:
				// Firma incorrecta u otro fallo de verificación.
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "DECODE_ERROR", Message: "no se pudo verificar el token"})
			}
		}

		user, err := store.UserByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_ERROR", Message: "no se pudo resolver la identidad"})
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "el usuario del token ya no existe"})
		}
		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_INACTIVE", Message: "cuenta desactivada"})
		}

		role, err := store.RoleByID(c.Context(), user.RoleID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_ERROR", Message: "no se pudo resolver el rol"})
		}

		c.Locals(LocalUser, user)
		if role != nil {
			c.Locals(LocalRole, role)
		}
		return c.Next()
	}
}

func authenticateAPIKey(c *fiber.Ctx, store identityStore, key string) error {
	user, apiKey, err := store.UserByAPIKey(c.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrApiKeyInvalid) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "API key inválida o inactiva"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_ERROR", Message: "no se pudo resolver la identidad"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_INACTIVE", Message: "cuenta desactivada"})
	}

	role, err := store.RoleByID(c.Context(), user.RoleID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_ERROR", Message: "no se pudo resolver el rol"})
	}

	c.Locals(LocalUser, user)
	if role != nil {
		c.Locals(LocalRole, role)
	}
	c.Locals(LocalAPIKey, apiKey)
	return c.Next()
}

func apiKeyFrom(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.Get("X-API-Key")); key != "" {
		return key
	}
	return strings.TrimSpace(c.Query("api_key"))
}

// GetUser devuelve el usuario autenticado del contexto (después de AuthMiddleware).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetRole devuelve el rol vivo del usuario autenticado, o nil si no se resolvió.
func GetRole(c *fiber.Ctx) *entity.Role {
	r, _ := c.Locals(LocalRole).(*entity.Role)
	return r
}

// GetAPIKey devuelve la API key usada para autenticar, o nil en auth por token.
func GetAPIKey(c *fiber.Ctx) *entity.ApiKey {
	k, _ := c.Locals(LocalAPIKey).(*entity.ApiKey)
	return k
}
