package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/domain/repository"
)

// ErrNoActiveRule lo devuelve Execute cuando el usuario no tiene regla
// configurada o la tiene inactiva. No es un fallo: el handler responde 200 con
// un mensaje informativo.
var ErrNoActiveRule = errors.New("sin regla de automatización activa")

// ExecutionReport resultado de una ejecución: total de leads procesados y una
// entrada de auditoría por cada par (lead, acción) aplicado.
type ExecutionReport struct {
	Processed int
	Results   []entity.ActionResult
}

// Engine motor de reglas de automatización. Por usuario y bajo demanda: escanea
// los leads que cumplen las condiciones de la regla y aplica las acciones en el
// orden declarado. La ejecución es síncrona y sin exclusión mutua entre llamadas
// concurrentes del mismo usuario (última escritura gana).
type Engine struct {
	rules     RuleStore
	leads     repository.LeadRepository
	followups repository.FollowupRepository
	sink      NotificationSink
}

// NewEngine construye el motor.
func NewEngine(rules RuleStore, leads repository.LeadRepository, followups repository.FollowupRepository, sink NotificationSink) *Engine {
	return &Engine{rules: rules, leads: leads, followups: followups, sink: sink}
}

// SetRules sobrescribe por completo la regla del usuario. No hay historial ni
// reglas parciales: una regla compuesta por usuario.
func (e *Engine) SetRules(ctx context.Context, rule *entity.AutomationRule) (*entity.AutomationRule, error) {
	rule.UpdatedAt = time.Now()
	if err := e.rules.Set(ctx, rule); err != nil {
		return nil, fmt.Errorf("guardar regla: %w", err)
	}
	return rule, nil
}

// GetRules devuelve la regla actual del usuario o (nil, nil) si no hay.
func (e *Engine) GetRules(ctx context.Context, userID string) (*entity.AutomationRule, error) {
	return e.rules.Get(ctx, userID)
}

// Execute corre la regla del usuario contra sus leads.
//
//   - Sin regla o regla inactiva: ErrNoActiveRule (no toca ningún registro).
//   - Condiciones: status exacto opcional; "sin actualizar hace N días" opcional
//     (0 o ausente no filtra por tiempo).
//   - Cero leads coincidentes: reporte {0, []}, no es error.
//   - Acciones de tipo desconocido se saltan sin registro ni error.
//   - Un error en cualquier acción aborta el lote; las acciones ya aplicadas
//     quedan aplicadas (no hay rollback entre acciones).
func (e *Engine) Execute(ctx context.Context, userID string) (*ExecutionReport, error) {
	rule, err := e.rules.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("leer regla: %w", err)
	}
	if rule == nil || !rule.Active {
		return nil, ErrNoActiveRule
	}

	var updatedBefore *time.Time
	if rule.Conditions.DaysSince > 0 {
		cutoff := time.Now().AddDate(0, 0, -rule.Conditions.DaysSince)
		updatedBefore = &cutoff
	}

	leads, err := e.leads.FindForAutomation(ctx, userID, rule.Conditions.Status, updatedBefore)
	if err != nil {
		return nil, fmt.Errorf("buscar leads: %w", err)
	}

	report := &ExecutionReport{Processed: len(leads), Results: []entity.ActionResult{}}
	for _, lead := range leads {
		for _, action := range rule.Actions {
			result, err := e.applyAction(ctx, lead, action)
			if err != nil {
				return nil, err
			}
			if result != nil {
				report.Results = append(report.Results, *result)
			}
		}
	}
	return report, nil
}

// applyAction aplica una acción sobre un lead. Devuelve (nil, nil) para tipos
// desconocidos.
func (e *Engine) applyAction(ctx context.Context, lead *entity.Lead, action entity.RuleAction) (*entity.ActionResult, error) {
	now := time.Now()
	switch action.Type {
	case entity.ActionCreateFollowup:
		followup := &entity.Followup{
			ID:           uuid.New().String(),
			LeadID:       lead.ID,
			UserID:       lead.UserID,
			ScheduledAt:  now.AddDate(0, 0, action.DelayDays),
			Notes:        action.Notes,
			Priority:     action.Priority,
			FollowupType: action.FollowupType,
			Automated:    true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if followup.Priority == "" {
			followup.Priority = entity.FollowupPriorityMedia
		}
		if err := e.followups.Create(ctx, followup); err != nil {
			return nil, fmt.Errorf("crear seguimiento para lead %s: %w", lead.ID, err)
		}
		return &entity.ActionResult{
			Action:     entity.ActionCreateFollowup,
			LeadID:     lead.ID,
			FollowupID: followup.ID,
		}, nil

	case entity.ActionChangeStatus:
		lead.Status = action.NewStatus
		lead.UpdatedAt = now
		if err := e.leads.Update(ctx, lead); err != nil {
			return nil, fmt.Errorf("cambiar estado del lead %s: %w", lead.ID, err)
		}
		return &entity.ActionResult{
			Action:    entity.ActionChangeStatus,
			LeadID:    lead.ID,
			NewStatus: action.NewStatus,
		}, nil

	case entity.ActionSendNotification:
		message := action.Message
		if message == "" {
			message = fmt.Sprintf("Automatización ejecutada sobre el lead %s", lead.Name)
		}
		notification := &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    lead.UserID,
			Type:      entity.NotificationTypeAutomation,
			Title:     "Automatización",
			Message:   message,
			CreatedAt: now,
		}
		if err := e.sink.Notify(ctx, notification); err != nil {
			return nil, fmt.Errorf("notificar lead %s: %w", lead.ID, err)
		}
		return &entity.ActionResult{
			Action:  entity.ActionSendNotification,
			LeadID:  lead.ID,
			Message: message,
		}, nil

	default:
		// Tipo desconocido: se ignora sin entrada de auditoría.
		return nil, nil
	}
}
