package repository

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// RoleRepository puerto de persistencia para Role.
// Create debe ser atómico frente a nombres duplicados (constraint único, no
// existencia + insert): dos creadores concurrentes no pueden colarse ambos.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Role, error)
	// Seed inserta los roles de forma idempotente (existentes se dejan intactos).
	Seed(ctx context.Context, roles []*entity.Role) error
}
