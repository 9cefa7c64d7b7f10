package automation

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// RepoSink implementación de NotificationSink que persiste la notificación.
// La costura se cierra en la composición: producción usa este sink, los tests
// pueden inyectar un grabador en memoria.
type RepoSink struct {
	repo repository.NotificationRepository
}

// NewRepoSink construye el sink respaldado por el repositorio de notificaciones.
func NewRepoSink(repo repository.NotificationRepository) *RepoSink {
	return &RepoSink{repo: repo}
}

// Notify persiste la notificación.
func (s *RepoSink) Notify(ctx context.Context, notification *entity.Notification) error {
	return s.repo.Create(ctx, notification)
}
