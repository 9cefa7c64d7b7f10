package dto

import "time"

// CreateApiKeyRequest entrada para crear una API key. permissions opcional:
// si se envía, congela un snapshot "modulo:accion" para esa key.
type CreateApiKeyRequest struct {
	Description string   `json:"description" validate:"omitempty,max=500"`
	Permissions []string `json:"permissions" validate:"omitempty"`
}

// ApiKeyResponse salida de una API key. El secreto completo solo se devuelve
// al crearla; los listados lo omiten.
type ApiKeyResponse struct {
	ID          string     `json:"id"`
	Key         string     `json:"key,omitempty"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	Permissions []string   `json:"permissions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
}

// SetApiKeyActiveRequest entrada para activar/desactivar una key sin eliminarla.
type SetApiKeyActiveRequest struct {
	Active bool `json:"active"`
}
