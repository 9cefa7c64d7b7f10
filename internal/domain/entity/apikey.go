package entity

import "time"

// ApiKey credencial alternativa durable para acceso programático. No expira:
// se desactiva o se elimina explícitamente.
type ApiKey struct {
	ID          string
	Key         string // secreto de alta entropía, prefijo "crm_"
	Description string
	IsActive    bool
	// Permissions snapshot opcional en forma "modulo:accion". Si no está vacío,
	// acota lo que la key puede hacer por debajo del rol del dueño.
	Permissions []string
	UserID      string
	CreatedAt   time.Time
	LastUsedAt  *time.Time
}

// AllowsPermission evalúa el snapshot de permisos de la key. Una key sin
// snapshot delega por completo en el rol del dueño.
func (k *ApiKey) AllowsPermission(permission string) bool {
	for _, p := range k.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// HasSnapshot informa si la key lleva snapshot de permisos propio.
func (k *ApiKey) HasSnapshot() bool {
	return len(k.Permissions) > 0
}
