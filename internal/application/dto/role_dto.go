package dto

import (
	"time"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	Name        string                  `json:"name" validate:"required,min=1,max=100"`
	DisplayName string                  `json:"display_name" validate:"omitempty,max=200"`
	Description string                  `json:"description" validate:"omitempty,max=500"`
	Permissions entity.PermissionMatrix `json:"permissions"`
}

// UpdateRoleRequest entrada para actualizar un rol. Campos nil se dejan como
// están (merge, no replace).
type UpdateRoleRequest struct {
	DisplayName *string                  `json:"display_name"`
	Description *string                  `json:"description"`
	Permissions *entity.PermissionMatrix `json:"permissions"`
}

// AssignRoleRequest entrada para asignar un rol a un usuario.
type AssignRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	RoleID string `json:"role_id" validate:"required"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	DisplayName string                  `json:"display_name"`
	Description string                  `json:"description"`
	Permissions entity.PermissionMatrix `json:"permissions"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}
