package dto

import "github.com/tu-usuario/crm-pro/internal/domain/entity"

// SetRulesRequest entrada de POST /api/automation/rules. Sobrescribe por
// completo la regla del usuario. Active nil equivale a true (las reglas se
// crean activas).
type SetRulesRequest struct {
	Triggers   []string              `json:"triggers"`
	Conditions entity.RuleConditions `json:"conditions"`
	Actions    []entity.RuleAction   `json:"actions"`
	Active     *bool                 `json:"active"`
}

// ExecuteResponse salida de POST /api/automation/execute.
type ExecuteResponse struct {
	Success   bool                  `json:"success"`
	Processed int                   `json:"processed"`
	Results   []entity.ActionResult `json:"results"`
}

// MessageResponse respuesta informativa simple (ej. ejecutar sin reglas activas).
type MessageResponse struct {
	Message string `json:"message"`
}
