package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-pro/internal/domain"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/crm-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/crm-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testRoleID    = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "crm-pro-test"
	testTTLMin    = 60
)

// fakeIdentity resuelve identidades desde mapas en memoria, emulando lo que el
// middleware relee de la base en cada request.
type fakeIdentity struct {
	users map[string]*entity.User
	roles map[string]*entity.Role
	keys  map[string]*entity.ApiKey
}

func (f *fakeIdentity) UserByID(ctx context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeIdentity) UserByAPIKey(ctx context.Context, key string) (*entity.User, *entity.ApiKey, error) {
	k, ok := f.keys[key]
	if !ok || !k.IsActive {
		return nil, nil, domain.ErrApiKeyInvalid
	}
	return f.users[k.UserID], k, nil
}

func (f *fakeIdentity) RoleByID(ctx context.Context, id string) (*entity.Role, error) {
	return f.roles[id], nil
}

func defaultIdentity() *fakeIdentity {
	return &fakeIdentity{
		users: map[string]*entity.User{
			testUserID: {
				ID:       testUserID,
				Name:     "Ana Vendedora",
				Email:    "ana@example.com",
				RoleID:   testRoleID,
				IsActive: true,
			},
		},
		roles: map[string]*entity.Role{
			testRoleID: {
				ID:   testRoleID,
				Name: entity.RoleVendedor,
				Permissions: entity.PermissionMatrix{
					entity.ModuleLeads: {Read: true, Write: true},
				},
			},
		},
		keys: map[string]*entity.ApiKey{},
	}
}

// buildTestApp monta una ruta protegida con la cadena AuthMiddleware +
// RequirePermission y un handler dummy.
func buildTestApp(identity *fakeIdentity, required string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, identity),
		apphttp.RequirePermission(required),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":   true,
				"user": apphttp.GetUser(c).Email,
				"role": apphttp.GetRole(c).Name,
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "ana@example.com", testRoleID, entity.RoleVendedor, testIssuer, testTTLMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyContains(t *testing.T, resp *http.Response, code string) {
	t.Helper()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), code)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware — Bearer token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido_ResuelveIdentidadViva(t *testing.T) {
	app := buildTestApp(defaultIdentity(), "leads:read")
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ana@example.com", body["user"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}

func TestAuthMiddleware_SinHeader_Retorna401NoToken(t *testing.T) {
	app := buildTestApp(defaultIdentity(), "leads:read")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "NO_TOKEN")
}

func TestAuthMiddleware_TokenLiteralNull_Retorna401(t *testing.T) {
	// Clientes que serializan su estado vacío mandan el texto "null".
	app := buildTestApp(defaultIdentity(), "leads:read")
	resp := doRequest(t, app, "Bearer null")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado_Retorna401TokenExpired(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ana@example.com", testRoleID, entity.RoleVendedor, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(defaultIdentity(), "leads:read")
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "TOKEN_EXPIRED")
}

func TestAuthMiddleware_TokenMalformado_Retorna401JWTMalformed(t *testing.T) {
	app := buildTestApp(defaultIdentity(), "leads:read")
	resp := doRequest(t, app, "Bearer esto-no-es-un-jwt")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "JWT_MALFORMED")
}

func TestAuthMiddleware_FirmaIncorrecta_Retorna401DecodeError(t *testing.T) {
	// Token bien formado pero firmado con otro secreto.
	tok, err := pkgjwt.Generate("otro-secreto-distinto", testUserID, "ana@example.com", testRoleID, entity.RoleVendedor, testIssuer, testTTLMin)
	require.NoError(t, err)

	app := buildTestApp(defaultIdentity(), "leads:read")
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "DECODE_ERROR")
}

func TestAuthMiddleware_UsuarioEliminado_Retorna401(t *testing.T) {
	// Token válido pero el usuario ya no existe en la base.
	identity := defaultIdentity()
	delete(identity.users, testUserID)

	app := buildTestApp(identity, "leads:read")
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "USER_NOT_FOUND")
}

func TestAuthMiddleware_UsuarioDesactivado_Retorna401(t *testing.T) {
	// La desactivación surte efecto aunque el token siga vigente.
	identity := defaultIdentity()
	identity.users[testUserID].IsActive = false

	app := buildTestApp(identity, "leads:read")
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "USER_INACTIVE")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_SinPermiso_Retorna403(t *testing.T) {
	app := buildTestApp(defaultIdentity(), "leads:delete")
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	bodyContains(t, resp, "INSUFFICIENT_PERMISSIONS")
}

func TestRequirePermission_RolEliminado_Retorna403RoleNotFound(t *testing.T) {
	identity := defaultIdentity()
	delete(identity.roles, testRoleID)

	app := buildTestApp(identity, "leads:read")
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	bodyContains(t, resp, "ROLE_NOT_FOUND")
}

func TestRequirePermission_AdminBypass(t *testing.T) {
	identity := defaultIdentity()
	identity.roles[testRoleID].Name = entity.RoleAdmin
	identity.roles[testRoleID].Permissions = entity.PermissionMatrix{}

	app := buildTestApp(identity, "settings:delete")
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe pasar sin importar su matriz")
}

// ──────────────────────────────────────────────────────────────────────────────
// API keys
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_APIKeyValida_Autentica(t *testing.T) {
	identity := defaultIdentity()
	identity.keys["crm_abc123"] = &entity.ApiKey{
		ID:       "k1",
		Key:      "crm_abc123",
		UserID:   testUserID,
		IsActive: true,
	}

	app := buildTestApp(identity, "leads:read")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "crm_abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"una key sin snapshot hereda los permisos del rol vivo del dueño")

	// La key debe resolver exactamente la identidad del dueño.
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ana@example.com", body["user"])
	assert.Equal(t, entity.RoleVendedor, body["role"])
}

func TestAuthMiddleware_APIKeyPorQueryParam(t *testing.T) {
	identity := defaultIdentity()
	identity.keys["crm_abc123"] = &entity.ApiKey{
		ID: "k1", Key: "crm_abc123", UserID: testUserID, IsActive: true,
	}

	app := buildTestApp(identity, "leads:read")
	req := httptest.NewRequest(http.MethodGet, "/protected?api_key=crm_abc123", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_APIKeyInvalida_Retorna401(t *testing.T) {
	app := buildTestApp(defaultIdentity(), "leads:read")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "crm_inexistente")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	bodyContains(t, resp, "INVALID_API_KEY")
}

func TestRequirePermission_SnapshotDeAPIKeyDecide(t *testing.T) {
	// Una key con snapshot congelado decide con el snapshot, no con el rol.
	identity := defaultIdentity()
	identity.keys["crm_limitada"] = &entity.ApiKey{
		ID:          "k2",
		Key:         "crm_limitada",
		UserID:      testUserID,
		IsActive:    true,
		Permissions: []string{"clients:read"},
	}

	app := buildTestApp(identity, "leads:read")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "crm_limitada")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	// El rol del dueño sí permite leads:read, pero el snapshot no lo incluye.
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	bodyContains(t, resp, "INSUFFICIENT_PERMISSIONS")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireSuperAdmin y RequireOwnership
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireSuperAdmin_EmailFueraDeLista_Retorna403(t *testing.T) {
	app := fiber.New()
	app.Delete("/users/:id",
		apphttp.AuthMiddleware(testJWTSecret, defaultIdentity()),
		apphttp.RequireSuperAdmin([]string{"dueno@example.com"}),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) },
	)

	req := httptest.NewRequest(http.MethodDelete, "/users/u2", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	bodyContains(t, resp, "SUPERADMIN_REQUIRED")
}

func TestRequireSuperAdmin_EmailEnLista_Pasa(t *testing.T) {
	app := fiber.New()
	app.Delete("/users/:id",
		apphttp.AuthMiddleware(testJWTSecret, defaultIdentity()),
		apphttp.RequireSuperAdmin([]string{"ana@example.com"}),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) },
	)

	req := httptest.NewRequest(http.MethodDelete, "/users/u2", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func buildOwnershipApp(identity *fakeIdentity, owners map[string]string) *fiber.App {
	app := fiber.New()
	app.Get("/leads/:id",
		apphttp.AuthMiddleware(testJWTSecret, identity),
		apphttp.RequireOwnership("id", func(c *fiber.Ctx, id string) (string, error) {
			owner, ok := owners[id]
			if !ok {
				return "", domain.ErrNotFound
			}
			return owner, nil
		}),
		func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) },
	)
	return app
}

func TestRequireOwnership_RecursoAjeno_Retorna403(t *testing.T) {
	app := buildOwnershipApp(defaultIdentity(), map[string]string{"l1": "otro-usuario"})

	req := httptest.NewRequest(http.MethodGet, "/leads/l1", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	bodyContains(t, resp, "OWNERSHIP_DENIED")
}

func TestRequireOwnership_RecursoPropio_Pasa(t *testing.T) {
	app := buildOwnershipApp(defaultIdentity(), map[string]string{"l1": testUserID})

	req := httptest.NewRequest(http.MethodGet, "/leads/l1", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireOwnership_RecursoInexistente_Retorna404(t *testing.T) {
	// El recurso inexistente se reporta como 404, no como denegación de dueño.
	app := buildOwnershipApp(defaultIdentity(), map[string]string{})

	req := httptest.NewRequest(http.MethodGet, "/leads/l9", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	bodyContains(t, resp, "RESOURCE_NOT_FOUND")
}
