package entity

import (
	"strings"
	"time"
)

// Roles semilla del sistema. Se crean de forma idempotente al arrancar.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleVendedor = "vendedor"
	RoleViewer   = "viewer"
)

// DefaultRoleName rol al que cae un usuario sin rol asignado.
const DefaultRoleName = RoleVendedor

// Módulos del sistema sobre los que se asignan permisos. Conjunto cerrado:
// una matriz de permisos solo puede referirse a estos nombres.
const (
	ModuleDashboard  = "dashboard"
	ModuleLeads      = "leads"
	ModuleClients    = "clients"
	ModuleQuotations = "quotations"
	ModuleFollowups  = "followups"
	ModuleUsers      = "users"
	ModuleSettings   = "settings"
	ModuleApiKeys    = "apikeys"
	ModuleAdmin      = "admin"
)

// Modules lista canónica de módulos válidos.
var Modules = []string{
	ModuleDashboard, ModuleLeads, ModuleClients, ModuleQuotations,
	ModuleFollowups, ModuleUsers, ModuleSettings, ModuleApiKeys, ModuleAdmin,
}

// IsValidModule informa si name pertenece al conjunto cerrado de módulos.
func IsValidModule(name string) bool {
	for _, m := range Modules {
		if m == name {
			return true
		}
	}
	return false
}

// Actions permisos sobre un módulo.
type Actions struct {
	Read   bool `json:"read"`
	Write  bool `json:"write"`
	Delete bool `json:"delete"`
}

// PermissionMatrix mapea módulo -> acciones permitidas. Es la única
// representación de permisos del sistema; los strings "modulo:accion" son una
// vista derivada (ver ParsePermission). Un módulo ausente equivale a todo en false.
type PermissionMatrix map[string]Actions

// Allows devuelve el booleano de matrix[module][action]. Nunca falla: módulo o
// acción desconocidos devuelven false (sin concesiones implícitas).
func (m PermissionMatrix) Allows(module, action string) bool {
	a, ok := m[module]
	if !ok {
		return false
	}
	switch action {
	case "read":
		return a.Read
	case "write":
		return a.Write
	case "delete":
		return a.Delete
	default:
		return false
	}
}

// AllowsPermission evalúa un permiso en forma "modulo:accion" contra la matriz.
func (m PermissionMatrix) AllowsPermission(permission string) bool {
	module, action, ok := ParsePermission(permission)
	if !ok {
		return false
	}
	return m.Allows(module, action)
}

// Validate verifica que todos los módulos presentes pertenezcan al conjunto cerrado.
func (m PermissionMatrix) Validate() bool {
	for module := range m {
		if !IsValidModule(module) {
			return false
		}
	}
	return true
}

// ParsePermission separa "modulo:accion". ok es false si la forma no es válida.
func ParsePermission(permission string) (module, action string, ok bool) {
	parts := strings.SplitN(permission, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// Role agrupa permisos por módulo bajo un nombre único (clave de máquina).
type Role struct {
	ID          string
	Name        string // clave única: admin, vendedor, ...
	DisplayName string
	Description string
	Permissions PermissionMatrix
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin informa si el rol es el rol administrador (bypass universal de
// permisos, roles y ownership).
func (r *Role) IsAdmin() bool {
	return r != nil && r.Name == RoleAdmin
}

// fullAccess acceso total a un módulo.
var fullAccess = Actions{Read: true, Write: true, Delete: true}

// readOnly solo lectura.
var readOnly = Actions{Read: true}

// SeedRoles devuelve los roles semilla con sus matrices. IDs vacíos: los asigna
// la capa de persistencia al sembrar.
func SeedRoles() []*Role {
	all := PermissionMatrix{}
	for _, m := range Modules {
		all[m] = fullAccess
	}

	viewer := PermissionMatrix{}
	for _, m := range []string{ModuleDashboard, ModuleLeads, ModuleClients, ModuleQuotations, ModuleFollowups} {
		viewer[m] = readOnly
	}

	return []*Role{
		{
			Name:        RoleOwner,
			DisplayName: "Propietario",
			Description: "Dueño de la cuenta, acceso completo",
			Permissions: all,
		},
		{
			Name:        RoleAdmin,
			DisplayName: "Administrador",
			Description: "Acceso completo a todos los módulos",
			Permissions: all,
		},
		{
			Name:        RoleManager,
			DisplayName: "Gerente",
			Description: "Gestión de ventas y equipo, sin administración del sistema",
			Permissions: PermissionMatrix{
				ModuleDashboard:  fullAccess,
				ModuleLeads:      fullAccess,
				ModuleClients:    fullAccess,
				ModuleQuotations: fullAccess,
				ModuleFollowups:  fullAccess,
				ModuleUsers:      readOnly,
				ModuleSettings:   readOnly,
			},
		},
		{
			Name:        RoleVendedor,
			DisplayName: "Vendedor",
			Description: "Gestión de sus propios leads, clientes y seguimientos",
			Permissions: PermissionMatrix{
				ModuleDashboard:  readOnly,
				ModuleLeads:      Actions{Read: true, Write: true},
				ModuleClients:    Actions{Read: true, Write: true},
				ModuleQuotations: Actions{Read: true, Write: true},
				ModuleFollowups:  Actions{Read: true, Write: true},
				ModuleApiKeys:    Actions{Read: true, Write: true},
			},
		},
		{
			Name:        RoleViewer,
			DisplayName: "Observador",
			Description: "Solo lectura sobre los módulos de ventas",
			Permissions: viewer,
		},
	}
}
