package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrRoleNotFound       = errors.New("rol no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrRoleHasUsers       = errors.New("el rol tiene usuarios asignados")
	ErrProtectedRole      = errors.New("el rol está protegido y no puede eliminarse")
	ErrApiKeyInvalid      = errors.New("api key inválida o inactiva")
)
