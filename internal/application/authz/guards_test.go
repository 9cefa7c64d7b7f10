package authz_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/crm-pro/internal/application/authz"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

func vendedorRole() *entity.Role {
	return &entity.Role{
		Name: entity.RoleVendedor,
		Permissions: entity.PermissionMatrix{
			entity.ModuleLeads: {Read: true, Write: true},
		},
	}
}

func adminRole() *entity.Role {
	return &entity.Role{Name: entity.RoleAdmin}
}

// ──────────────────────────────────────────────────────────────────────────────
// Permission
// ──────────────────────────────────────────────────────────────────────────────

func TestPermission_RolConcedePermiso(t *testing.T) {
	user := &entity.User{ID: "u1"}
	d := authz.Permission(user, vendedorRole(), "leads:write")
	assert.True(t, d.Allowed)
}

func TestPermission_RolSinPermiso_Deniega(t *testing.T) {
	user := &entity.User{ID: "u1"}
	d := authz.Permission(user, vendedorRole(), "leads:delete")

	assert.True(t, d.Denied())
	assert.Equal(t, http.StatusForbidden, d.Status)
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", d.Code)
	assert.Equal(t, "leads:delete", d.Required, "la denegación debe indicar qué se exigía")
	assert.Equal(t, entity.RoleVendedor, d.Current)
}

func TestPermission_AdminBypass(t *testing.T) {
	// admin pasa aunque su matriz no mencione el módulo.
	user := &entity.User{ID: "u1"}
	d := authz.Permission(user, adminRole(), "settings:delete")
	assert.True(t, d.Allowed)
}

func TestPermission_SinRol_RoleNotFound(t *testing.T) {
	user := &entity.User{ID: "u1"}
	d := authz.Permission(user, nil, "leads:read")

	assert.True(t, d.Denied())
	assert.Equal(t, "ROLE_NOT_FOUND", d.Code)
}

func TestPermission_OverrideLegadoDelUsuario(t *testing.T) {
	// El override por usuario complementa la matriz del rol.
	user := &entity.User{ID: "u1", Permissions: []string{"leads:delete"}}
	d := authz.Permission(user, vendedorRole(), "leads:delete")
	assert.True(t, d.Allowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// RoleAllowed
// ──────────────────────────────────────────────────────────────────────────────

func TestRoleAllowed_RolEnLista(t *testing.T) {
	d := authz.RoleAllowed(vendedorRole(), entity.RoleManager, entity.RoleVendedor)
	assert.True(t, d.Allowed)
}

func TestRoleAllowed_RolFueraDeLista(t *testing.T) {
	d := authz.RoleAllowed(vendedorRole(), entity.RoleManager)

	assert.True(t, d.Denied())
	assert.Equal(t, "INSUFFICIENT_ROLE", d.Code)
	assert.Equal(t, entity.RoleVendedor, d.Current)
}

func TestRoleAllowed_AdminSiemprePasa(t *testing.T) {
	d := authz.RoleAllowed(adminRole(), entity.RoleManager)
	assert.True(t, d.Allowed)
}

func TestRoleAllowed_SinRol_Deniega(t *testing.T) {
	d := authz.RoleAllowed(nil, entity.RoleManager)
	assert.Equal(t, "ROLE_NOT_FOUND", d.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// SuperAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestSuperAdmin_EmailEnLista(t *testing.T) {
	user := &entity.User{ID: "u1", Email: "Dueno@Empresa.com"}
	d := authz.SuperAdmin(user, []string{"dueno@empresa.com"})
	assert.True(t, d.Allowed, "la comparación de emails debe ignorar mayúsculas")
}

func TestSuperAdmin_AdminNoEstaEnLista_Deniega(t *testing.T) {
	// Ser admin no implica super-admin: la lista es independiente del rol.
	user := &entity.User{ID: "u1", Email: "admin@empresa.com"}
	d := authz.SuperAdmin(user, []string{"dueno@empresa.com"})

	assert.True(t, d.Denied())
	assert.Equal(t, "SUPERADMIN_REQUIRED", d.Code)
}

func TestSuperAdmin_ListaVacia_Deniega(t *testing.T) {
	user := &entity.User{ID: "u1", Email: "dueno@empresa.com"}
	d := authz.SuperAdmin(user, nil)
	assert.True(t, d.Denied())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ownership
// ──────────────────────────────────────────────────────────────────────────────

func TestOwnership_DuenoAccede(t *testing.T) {
	user := &entity.User{ID: "u1"}
	d := authz.Ownership(user, vendedorRole(), "u1")
	assert.True(t, d.Allowed)
}

func TestOwnership_OtroUsuario_Deniega(t *testing.T) {
	user := &entity.User{ID: "u1"}
	d := authz.Ownership(user, vendedorRole(), "u2")

	assert.True(t, d.Denied())
	assert.Equal(t, "OWNERSHIP_DENIED", d.Code)
}

func TestOwnership_AdminAccedeRecursoAjeno(t *testing.T) {
	user := &entity.User{ID: "u1"}
	d := authz.Ownership(user, adminRole(), "u2")
	assert.True(t, d.Allowed)
}
