package repository

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, error)
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
