package entity

import "time"

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	RoleID       string // referencia a Role; vacío cae al rol por defecto
	IsActive     bool
	// Permissions override legado en forma "modulo:accion". Rara vez usado:
	// complementa (nunca reemplaza) la matriz del rol.
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasOverride informa si el usuario tiene el permiso concedido por override directo.
func (u *User) HasOverride(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
