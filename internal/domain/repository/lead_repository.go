package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// LeadRepository puerto de persistencia para Lead.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Lead, error)
	// FindForAutomation devuelve los leads del usuario que cumplen el filtro del
	// motor: status exacto si no es vacío, updated_at <= updatedBefore si no es nil.
	// Sin paginación: el scan está acotado por la cantidad de leads del usuario.
	FindForAutomation(ctx context.Context, userID, status string, updatedBefore *time.Time) ([]*entity.Lead, error)
}
