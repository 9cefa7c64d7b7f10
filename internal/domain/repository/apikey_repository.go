package repository

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// ApiKeyRepository puerto de persistencia para ApiKey.
type ApiKeyRepository interface {
	Create(ctx context.Context, key *entity.ApiKey) error
	GetByID(ctx context.Context, id string) (*entity.ApiKey, error)
	// GetByKey busca por el secreto; devuelve (nil, nil) si no existe.
	GetByKey(ctx context.Context, key string) (*entity.ApiKey, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.ApiKey, error)
	Update(ctx context.Context, key *entity.ApiKey) error
	Delete(ctx context.Context, id string) error
	// TouchLastUsed marca el último uso; best-effort, no bloquea la autenticación.
	TouchLastUsed(ctx context.Context, id string) error
}
