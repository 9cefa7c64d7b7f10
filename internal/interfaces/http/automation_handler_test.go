package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-pro/internal/application/automation"
	"github.com/tu-usuario/crm-pro/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/crm-pro/internal/interfaces/http"
)

func buildAutomationApp(identity *fakeIdentity, withAuth bool) *fiber.App {
	engine := automation.NewEngine(memory.NewRuleStore(), nil, nil, nil)
	handler := apphttp.NewAutomationHandler(engine)

	app := fiber.New()
	group := app.Group("/api/automation")
	if withAuth {
		group.Use(apphttp.AuthMiddleware(testJWTSecret, identity))
	}
	group.Get("/rules", handler.GetRules)
	group.Post("/rules", handler.SetRules)
	group.Post("/execute", handler.Execute)
	return app
}

func TestAutomationHandler_SinIdentidad_Retorna401(t *testing.T) {
	// Montado sin middleware de autenticación: el handler responde 401 en vez
	// de dereferenciar un usuario inexistente.
	app := buildAutomationApp(defaultIdentity(), false)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/automation/rules"},
		{http.MethodPost, "/api/automation/rules"},
		{http.MethodPost, "/api/automation/execute"},
	}
	for _, r := range routes {
		req := httptest.NewRequest(r.method, r.path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", r.method, r.path)
		bodyContains(t, resp, "NO_TOKEN")
		resp.Body.Close()
	}
}

func TestAutomationHandler_SinReglaConfigurada_RetornaObjetoVacio(t *testing.T) {
	app := buildAutomationApp(defaultIdentity(), true)

	req := httptest.NewRequest(http.MethodGet, "/api/automation/rules", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{}`, string(body))
}
