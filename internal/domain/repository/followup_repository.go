package repository

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// FollowupRepository puerto de persistencia para Followup.
type FollowupRepository interface {
	Create(ctx context.Context, followup *entity.Followup) error
	GetByID(ctx context.Context, id string) (*entity.Followup, error)
	Update(ctx context.Context, followup *entity.Followup) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Followup, error)
	ListByLead(ctx context.Context, leadID string) ([]*entity.Followup, error)
}
