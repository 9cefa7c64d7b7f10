package repository

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// ClientRepository puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Client, error)
}
