package automation

import (
	"context"

	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// RuleStore almacena la regla compuesta de cada usuario. La decisión de
// duración/durabilidad del almacenamiento vive en la implementación (hoy:
// memoria de proceso, no sobrevive reinicios); el motor es stateless.
type RuleStore interface {
	// Get devuelve la regla del usuario o (nil, nil) si no hay configurada.
	Get(ctx context.Context, userID string) (*entity.AutomationRule, error)
	// Set reemplaza por completo la regla del usuario.
	Set(ctx context.Context, rule *entity.AutomationRule) error
}

// NotificationSink recibe las notificaciones que emite la acción
// send_notification. Es una costura explícita: la implementación decide si la
// notificación se persiste, se envía o solo se registra.
type NotificationSink interface {
	Notify(ctx context.Context, notification *entity.Notification) error
}
