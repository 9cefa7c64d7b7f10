package dto

import (
	"time"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// RegisterRequest entrada para registro: role_name debe nombrar un rol existente
// (vacío cae al rol por defecto).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	RoleName string `json:"role_name" validate:"omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    string    `json:"role_id"`
	RoleName  string    `json:"role_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse salida con token de sesión.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// VerifyResponse salida de GET /api/auth/verify: usuario vivo, su rol resuelto
// y la matriz de permisos efectiva.
type VerifyResponse struct {
	User        UserResponse            `json:"user"`
	Role        RoleResponse            `json:"role"`
	Permissions entity.PermissionMatrix `json:"permissions"`
}
