package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-pro/internal/application/auth"
	"github.com/tu-usuario/crm-pro/internal/application/dto"
	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/crm-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }
func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeUserRepo) CountByRole(ctx context.Context, roleID string) (int, error) {
	return 0, nil
}

type fakeRoleRepo struct {
	byID   map[string]*entity.Role
	byName map[string]*entity.Role
}

func newFakeRoleRepo(roles ...*entity.Role) *fakeRoleRepo {
	f := &fakeRoleRepo{byID: map[string]*entity.Role{}, byName: map[string]*entity.Role{}}
	for _, r := range roles {
		f.byID[r.ID] = r
		f.byName[r.Name] = r
	}
	return f
}

func (f *fakeRoleRepo) Create(ctx context.Context, r *entity.Role) error { return nil }
func (f *fakeRoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return f.byID[id], nil
}
func (f *fakeRoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return f.byName[name], nil
}
func (f *fakeRoleRepo) Update(ctx context.Context, r *entity.Role) error { return nil }
func (f *fakeRoleRepo) Delete(ctx context.Context, id string) error      { return nil }
func (f *fakeRoleRepo) List(ctx context.Context) ([]*entity.Role, error) { return nil, nil }
func (f *fakeRoleRepo) Seed(ctx context.Context, roles []*entity.Role) error {
	return nil
}

var testJWT = auth.JWTConfig{Secret: "secret-de-test", SessionTTL: 120, Issuer: "crm-pro-test"}

func buildAuthUC() (*auth.AuthUseCase, *fakeUserRepo, *fakeRoleRepo) {
	roles := newFakeRoleRepo(
		&entity.Role{ID: "r-vendedor", Name: entity.RoleVendedor},
		&entity.Role{ID: "r-admin", Name: entity.RoleAdmin},
	)
	users := newFakeUserRepo()
	return auth.NewAuthUseCase(users, roles, testJWT), users, roles
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_SinRol_CaeAlRolPorDefecto(t *testing.T) {
	uc, users, _ := buildAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "supersecreta",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVendedor, out.User.RoleName)
	assert.NotEmpty(t, out.Token)

	stored := users.byEmail["ana@example.com"]
	require.NotNil(t, stored)
	assert.True(t, stored.IsActive)
	assert.NotEqual(t, "supersecreta", stored.PasswordHash, "la password nunca se guarda en claro")
}

func TestRegister_RolInexistente_RetornaError(t *testing.T) {
	uc, _, _ := buildAuthUC()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "supersecreta",
		RoleName: "superheroe",
	})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestRegister_EmailDuplicado_RetornaError(t *testing.T) {
	uc, _, _ := buildAuthUC()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Otra Ana", Email: "ana@example.com", Password: "otracosa12"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_TokenLlevaIdentidadYSnapshotDeRol(t *testing.T) {
	uc, _, _ := buildAuthUC()

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "supersecreta",
		RoleName: entity.RoleAdmin,
	})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.RoleName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func registerAna(t *testing.T, uc *auth.AuthUseCase) {
	t.Helper()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "supersecreta",
	})
	require.NoError(t, err)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _, _ := buildAuthUC()
	registerAna(t, uc)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "supersecreta",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

func TestLogin_EmailDesconocido_ErrUserNotFound(t *testing.T) {
	uc, _, _ := buildAuthUC()

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@example.com",
		Password: "loquesea12",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound,
		"email desconocido se distingue de password incorrecta")
}

func TestLogin_PasswordIncorrecta_ErrUnauthorized(t *testing.T) {
	uc, _, _ := buildAuthUC()
	registerAna(t, uc)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "incorrecta99",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaDesactivada_ErrForbidden(t *testing.T) {
	uc, users, _ := buildAuthUC()
	registerAna(t, uc)
	users.byEmail["ana@example.com"].IsActive = false

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@example.com",
		Password: "supersecreta",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verify
// ──────────────────────────────────────────────────────────────────────────────

func TestVerify_DevuelveEstadoVivo(t *testing.T) {
	uc, users, roles := buildAuthUC()
	registerAna(t, uc)
	user := users.byEmail["ana@example.com"]

	// El rol cambió después de emitirse el token: Verify debe reflejarlo.
	roles.byID["r-vendedor"].Permissions = entity.PermissionMatrix{
		entity.ModuleLeads: {Read: true},
	}

	out, err := uc.Verify(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, out.Role.Name)
	assert.True(t, out.Permissions.AllowsPermission("leads:read"))
	assert.False(t, out.Permissions.AllowsPermission("leads:write"))
}

func TestVerify_UsuarioEliminado_ErrUserNotFound(t *testing.T) {
	uc, _, _ := buildAuthUC()

	_, err := uc.Verify(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolveRole_RolEliminado_CaeAlPorDefecto(t *testing.T) {
	uc, users, roles := buildAuthUC()
	registerAna(t, uc)
	user := users.byEmail["ana@example.com"]

	// El rol asignado desaparece: ResolveRole cae al rol por defecto.
	user.RoleID = "r-borrado"
	delete(roles.byID, "r-borrado")

	role, err := uc.ResolveRole(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, entity.DefaultRoleName, role.Name)
}
