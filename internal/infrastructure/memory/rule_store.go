package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/crm-pro/internal/application/automation"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

var _ automation.RuleStore = (*RuleStore)(nil)

// RuleStore almacén de reglas en memoria de proceso, una por usuario. No es
// durable: un reinicio deja a todos los usuarios sin regla configurada. El
// mutex protege el mapa; no hay atomicidad entre un Get y el uso posterior
// (una configuración concurrente puede ganar entre medio).
type RuleStore struct {
	mu    sync.RWMutex
	rules map[string]entity.AutomationRule
}

// NewRuleStore construye el almacén vacío.
func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]entity.AutomationRule)}
}

// Get devuelve una copia de la regla del usuario o (nil, nil) si no hay.
func (s *RuleStore) Get(_ context.Context, userID string) (*entity.AutomationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.rules[userID]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

// Set reemplaza por completo la regla del usuario.
func (s *RuleStore) Set(_ context.Context, rule *entity.AutomationRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.UserID] = *rule
	return nil
}
