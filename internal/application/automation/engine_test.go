package automation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-pro/internal/application/automation"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	"github.com/tu-usuario/crm-pro/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeLeadRepo aplica en memoria el mismo filtro que la consulta SQL de
// FindForAutomation.
type fakeLeadRepo struct {
	leads   []*entity.Lead
	updated []*entity.Lead
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error { return nil }
func (f *fakeLeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	for _, l := range f.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}
func (f *fakeLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	f.updated = append(f.updated, lead)
	return nil
}
func (f *fakeLeadRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeLeadRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Lead, error) {
	return f.leads, nil
}
func (f *fakeLeadRepo) FindForAutomation(ctx context.Context, userID, status string, updatedBefore *time.Time) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, l := range f.leads {
		if l.UserID != userID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		if updatedBefore != nil && l.UpdatedAt.After(*updatedBefore) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type fakeFollowupRepo struct {
	created []*entity.Followup
}

func (f *fakeFollowupRepo) Create(ctx context.Context, followup *entity.Followup) error {
	f.created = append(f.created, followup)
	return nil
}
func (f *fakeFollowupRepo) GetByID(ctx context.Context, id string) (*entity.Followup, error) {
	return nil, nil
}
func (f *fakeFollowupRepo) Update(ctx context.Context, followup *entity.Followup) error { return nil }
func (f *fakeFollowupRepo) Delete(ctx context.Context, id string) error                 { return nil }
func (f *fakeFollowupRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Followup, error) {
	return nil, nil
}
func (f *fakeFollowupRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Followup, error) {
	return nil, nil
}

type fakeSink struct {
	sent []*entity.Notification
}

func (f *fakeSink) Notify(ctx context.Context, n *entity.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func buildEngine(leads *fakeLeadRepo, followups *fakeFollowupRepo, sink *fakeSink) *automation.Engine {
	return automation.NewEngine(memory.NewRuleStore(), leads, followups, sink)
}

func leadFor(userID, status string, updatedAt time.Time) *entity.Lead {
	return &entity.Lead{
		ID:        "lead-" + status + "-" + updatedAt.Format("0102"),
		UserID:    userID,
		Name:      "Lead de prueba",
		Status:    status,
		UpdatedAt: updatedAt,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ejecución
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_SinRegla_RetornaErrNoActiveRule(t *testing.T) {
	engine := buildEngine(&fakeLeadRepo{}, &fakeFollowupRepo{}, &fakeSink{})

	_, err := engine.Execute(context.Background(), "u1")
	assert.ErrorIs(t, err, automation.ErrNoActiveRule)
}

func TestExecute_ReglaInactiva_RetornaErrNoActiveRule(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*entity.Lead{leadFor("u1", entity.LeadStatusNuevo, time.Now())}}
	engine := buildEngine(leads, &fakeFollowupRepo{}, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:  "u1",
		Actions: []entity.RuleAction{{Type: entity.ActionCreateFollowup}},
		Active:  false,
	})
	require.NoError(t, err)

	_, err = engine.Execute(context.Background(), "u1")
	assert.ErrorIs(t, err, automation.ErrNoActiveRule,
		"una regla desactivada no debe ejecutarse")
}

func TestExecute_FiltraPorStatus(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*entity.Lead{
		leadFor("u1", entity.LeadStatusNuevo, time.Now()),
		leadFor("u1", entity.LeadStatusContactado, time.Now()),
	}}
	followups := &fakeFollowupRepo{}
	engine := buildEngine(leads, followups, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:     "u1",
		Conditions: entity.RuleConditions{Status: entity.LeadStatusNuevo},
		Actions:    []entity.RuleAction{{Type: entity.ActionCreateFollowup, DelayDays: 2}},
		Active:     true,
	})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed, "solo el lead en estado nuevo debe procesarse")
	require.Len(t, followups.created, 1)
	assert.True(t, followups.created[0].Automated)
	assert.Equal(t, entity.FollowupPriorityMedia, followups.created[0].Priority,
		"sin prioridad explícita debe usarse media")
}

func TestExecute_FiltraPorDiasSinActualizar(t *testing.T) {
	viejo := leadFor("u1", entity.LeadStatusContactado, time.Now().AddDate(0, 0, -10))
	reciente := leadFor("u1", entity.LeadStatusContactado, time.Now())
	leads := &fakeLeadRepo{leads: []*entity.Lead{viejo, reciente}}
	engine := buildEngine(leads, &fakeFollowupRepo{}, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:     "u1",
		Conditions: entity.RuleConditions{DaysSince: 7},
		Actions:    []entity.RuleAction{{Type: entity.ActionChangeStatus, NewStatus: entity.LeadStatusPerdido}},
		Active:     true,
	})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, entity.LeadStatusPerdido, viejo.Status)
	assert.Equal(t, entity.LeadStatusContactado, reciente.Status,
		"el lead actualizado hace poco no debe tocarse")
}

func TestExecute_CeroLeadsCoincidentes_NoEsError(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*entity.Lead{leadFor("u1", entity.LeadStatusGanado, time.Now())}}
	engine := buildEngine(leads, &fakeFollowupRepo{}, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:     "u1",
		Conditions: entity.RuleConditions{Status: entity.LeadStatusNuevo},
		Actions:    []entity.RuleAction{{Type: entity.ActionCreateFollowup}},
		Active:     true,
	})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Empty(t, report.Results)
}

func TestExecute_AccionDesconocida_SeSaltaSinError(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*entity.Lead{leadFor("u1", entity.LeadStatusNuevo, time.Now())}}
	followups := &fakeFollowupRepo{}
	engine := buildEngine(leads, followups, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID: "u1",
		Actions: []entity.RuleAction{
			{Type: "enviar_paloma_mensajera"},
			{Type: entity.ActionCreateFollowup},
		},
		Active: true,
	})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Len(t, report.Results, 1, "la acción desconocida no debe producir resultado")
	assert.Len(t, followups.created, 1)
}

func TestExecute_SendNotification_PasaPorElSink(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*entity.Lead{leadFor("u1", entity.LeadStatusNuevo, time.Now())}}
	sink := &fakeSink{}
	engine := buildEngine(leads, &fakeFollowupRepo{}, sink)

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:  "u1",
		Actions: []entity.RuleAction{{Type: entity.ActionSendNotification, Message: "lead sin atender"}},
		Active:  true,
	})
	require.NoError(t, err)

	_, err = engine.Execute(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, sink.sent, 1)
	assert.Equal(t, "lead sin atender", sink.sent[0].Message)
	assert.Equal(t, "u1", sink.sent[0].UserID)
}

func TestExecute_ReglasAisladasPorUsuario(t *testing.T) {
	leads := &fakeLeadRepo{leads: []*entity.Lead{
		leadFor("u1", entity.LeadStatusNuevo, time.Now()),
		leadFor("u2", entity.LeadStatusNuevo, time.Now()),
	}}
	followups := &fakeFollowupRepo{}
	engine := buildEngine(leads, followups, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:  "u1",
		Actions: []entity.RuleAction{{Type: entity.ActionCreateFollowup}},
		Active:  true,
	})
	require.NoError(t, err)

	report, err := engine.Execute(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed, "la regla de u1 no debe tocar leads de u2")

	// u2 no configuró nada.
	_, err = engine.Execute(context.Background(), "u2")
	assert.ErrorIs(t, err, automation.ErrNoActiveRule)
}

func TestSetRules_SobrescribeLaAnterior(t *testing.T) {
	engine := buildEngine(&fakeLeadRepo{}, &fakeFollowupRepo{}, &fakeSink{})

	_, err := engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:  "u1",
		Actions: []entity.RuleAction{{Type: entity.ActionCreateFollowup}},
		Active:  true,
	})
	require.NoError(t, err)

	_, err = engine.SetRules(context.Background(), &entity.AutomationRule{
		UserID:  "u1",
		Actions: []entity.RuleAction{{Type: entity.ActionSendNotification}},
		Active:  true,
	})
	require.NoError(t, err)

	rule, err := engine.GetRules(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, rule)
	require.Len(t, rule.Actions, 1, "no hay reglas parciales: la nueva reemplaza por completo")
	assert.Equal(t, entity.ActionSendNotification, rule.Actions[0].Type)
}
