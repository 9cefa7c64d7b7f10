package usecase

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// NotificationUseCase listado y lectura de notificaciones del usuario.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// ListByUser lista las notificaciones del usuario con paginación.
func (uc *NotificationUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]*dto.NotificationResponse, error) {
	page.DefaultPage()
	notifications, err := uc.notificationRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return domain.ErrNotFound
	}
	return uc.notificationRepo.MarkRead(ctx, id)
}

// OwnerOf devuelve el dueño de la notificación (guardia de ownership del router).
func (uc *NotificationUseCase) OwnerOf(ctx context.Context, id string) (string, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if notification == nil {
		return "", domain.ErrNotFound
	}
	return notification.UserID, nil
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
