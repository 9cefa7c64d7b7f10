// Package authz contiene las guardias de autorización como funciones puras y
// componibles. Cada guardia evalúa una sola regla y devuelve una Decision
// etiquetada; las reglas de bypass (rol admin, super-admin por email) quedan
// explícitas y testeables por separado en lugar de escondidas en una cadena
// implícita de prioridades.
package authz

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// Decision resultado etiquetado de una guardia: o permite, o niega con un
// código de máquina, un status HTTP y contexto de qué se exigía.
type Decision struct {
	Allowed  bool
	Status   int
	Code     string
	Message  string
	Required string
	Current  string
}

// Allow decisión afirmativa.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny decisión negativa con código y mensaje.
func Deny(status int, code, message string) Decision {
	return Decision{Status: status, Code: code, Message: message}
}

// Denied azúcar de legibilidad.
func (d Decision) Denied() bool { return !d.Allowed }

// Permission verifica que el rol vivo del usuario conceda el permiso
// "modulo:accion". Bypass: rol admin. El override legado del usuario
// (User.Permissions) complementa la matriz del rol.
func Permission(user *entity.User, role *entity.Role, required string) Decision {
	if role.IsAdmin() {
		return Allow()
	}
	if role == nil {
		return Deny(fiber.StatusForbidden, "ROLE_NOT_FOUND", "el usuario no tiene un rol válido asignado")
	}
	if user != nil && user.HasOverride(required) {
		return Allow()
	}
	if !role.Permissions.AllowsPermission(required) {
		d := Deny(fiber.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "permisos insuficientes")
		d.Required = required
		d.Current = role.Name
		return d
	}
	return Allow()
}

// RoleAllowed verifica que el nombre del rol esté en la lista permitida.
// Bypass: admin siempre pasa.
func RoleAllowed(role *entity.Role, allowed ...string) Decision {
	if role.IsAdmin() {
		return Allow()
	}
	if role == nil {
		return Deny(fiber.StatusForbidden, "ROLE_NOT_FOUND", "el usuario no tiene un rol válido asignado")
	}
	for _, name := range allowed {
		if role.Name == name {
			return Allow()
		}
	}
	d := Deny(fiber.StatusForbidden, "INSUFFICIENT_ROLE", "rol insuficiente para esta operación")
	d.Required = strings.Join(allowed, ",")
	d.Current = role.Name
	return d
}

// SuperAdmin verifica que el email del usuario esté en la lista fija de
// super-admins. Es un bypass aparte del modelo de roles: un admin que no esté
// en la lista NO pasa.
func SuperAdmin(user *entity.User, allowlist []string) Decision {
	if user != nil {
		email := strings.ToLower(user.Email)
		for _, e := range allowlist {
			if email == e {
				return Allow()
			}
		}
	}
	return Deny(fiber.StatusForbidden, "SUPERADMIN_REQUIRED", "se requiere super administrador")
}

// Ownership verifica que el recurso pertenezca al usuario autenticado.
// Bypass: rol admin accede a recursos de cualquier usuario.
func Ownership(user *entity.User, role *entity.Role, ownerID string) Decision {
	if role.IsAdmin() {
		return Allow()
	}
	if user != nil && user.ID == ownerID {
		return Allow()
	}
	return Deny(fiber.StatusForbidden, "OWNERSHIP_DENIED", "el recurso pertenece a otro usuario")
}
