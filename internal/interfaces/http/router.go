package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/crm-pro/internal/application/auth"
	"github.com/tu-usuario/crm-pro/internal/application/automation"
	"github.com/tu-usuario/crm-pro/internal/application/usecase"
	"github.com/tu-usuario/crm-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	Identity        *auth.IdentityService
	RoleUC          *usecase.RoleUseCase
	UserUC          *usecase.UserUseCase
	ApiKeyUC        *usecase.ApiKeyUseCase
	LeadUC          *usecase.LeadUseCase
	ClientUC        *usecase.ClientUseCase
	QuotationUC     *usecase.QuotationUseCase
	FollowupUC      *usecase.FollowupUseCase
	NotificationUC  *usecase.NotificationUseCase
	Engine          *automation.Engine
	JWTSecret       string
	SuperAdminList  []string
}

// Router registra las rutas de la API. Cada ruta protegida lleva la cadena:
// AuthMiddleware (identidad viva) y luego las guardias que la operación exija.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token o API key)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Identity))

	authGroup2 := protected.Group("/auth")
	authGroup2.Get("/verify", authHandler.Verify)

	// Roles (protegido, solo admin)
	roles := protected.Group("/roles", RequireRole(entity.RoleAdmin))
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Post("/assign", roleHandler.Assign)
	roles.Get("/:id", roleHandler.Get)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	// Usuarios (protegido; listar y activar exigen permiso, eliminar super-admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequirePermission("users:read"), userHandler.List)
	users.Put("/:id/active", RequirePermission("users:write"), userHandler.SetActive)
	users.Delete("/:id", RequireSuperAdmin(deps.SuperAdminList), userHandler.Delete)

	// API keys (protegido, siempre sobre las propias)
	apikeys := protected.Group("/apikeys", RequirePermission("apikeys:read"))
	apiKeyHandler := NewApiKeyHandler(deps.ApiKeyUC)
	apikeys.Get("/", apiKeyHandler.List)
	apikeys.Post("/", RequirePermission("apikeys:write"), apiKeyHandler.Create)
	apikeys.Put("/:id/active", RequirePermission("apikeys:write"), apiKeyHandler.SetActive)
	apikeys.Delete("/:id", RequirePermission("apikeys:delete"), apiKeyHandler.Delete)

	// Leads (protegido; las rutas por ID verifican dueño)
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leadOwner := func(c *fiber.Ctx, id string) (string, error) {
		return deps.LeadUC.OwnerOf(c.Context(), id)
	}
	leads.Get("/", RequirePermission("leads:read"), leadHandler.List)
	leads.Post("/", RequirePermission("leads:write"), leadHandler.Create)
	leads.Get("/:id", RequirePermission("leads:read"), RequireOwnership("id", leadOwner), leadHandler.Get)
	leads.Put("/:id", RequirePermission("leads:write"), RequireOwnership("id", leadOwner), leadHandler.Update)
	leads.Delete("/:id", RequirePermission("leads:delete"), RequireOwnership("id", leadOwner), leadHandler.Delete)

	// Clientes (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clientOwner := func(c *fiber.Ctx, id string) (string, error) {
		return deps.ClientUC.OwnerOf(c.Context(), id)
	}
	clients.Get("/", RequirePermission("clients:read"), clientHandler.List)
	clients.Post("/", RequirePermission("clients:write"), clientHandler.Create)
	clients.Get("/:id", RequirePermission("clients:read"), RequireOwnership("id", clientOwner), clientHandler.Get)
	clients.Delete("/:id", RequirePermission("clients:delete"), RequireOwnership("id", clientOwner), clientHandler.Delete)

	// Cotizaciones (protegido)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotationOwner := func(c *fiber.Ctx, id string) (string, error) {
		return deps.QuotationUC.OwnerOf(c.Context(), id)
	}
	quotations.Get("/", RequirePermission("quotations:read"), quotationHandler.List)
	quotations.Post("/", RequirePermission("quotations:write"), quotationHandler.Create)
	quotations.Get("/:id", RequirePermission("quotations:read"), RequireOwnership("id", quotationOwner), quotationHandler.Get)
	quotations.Put("/:id/status", RequirePermission("quotations:write"), RequireOwnership("id", quotationOwner), quotationHandler.UpdateStatus)
	quotations.Delete("/:id", RequirePermission("quotations:delete"), RequireOwnership("id", quotationOwner), quotationHandler.Delete)

	// Seguimientos (protegido)
	followups := protected.Group("/followups")
	followupHandler := NewFollowupHandler(deps.FollowupUC)
	followupOwner := func(c *fiber.Ctx, id string) (string, error) {
		return deps.FollowupUC.OwnerOf(c.Context(), id)
	}
	followups.Get("/", RequirePermission("followups:read"), followupHandler.List)
	followups.Post("/", RequirePermission("followups:write"), followupHandler.Create)
	followups.Get("/lead/:leadId", RequirePermission("followups:read"), RequireOwnership("leadId", leadOwner), followupHandler.ListByLead)
	followups.Put("/:id/complete", RequirePermission("followups:write"), RequireOwnership("id", followupOwner), followupHandler.Complete)
	followups.Delete("/:id", RequirePermission("followups:delete"), RequireOwnership("id", followupOwner), followupHandler.Delete)

	// Notificaciones (protegido, siempre sobre las propias)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notificationOwner := func(c *fiber.Ctx, id string) (string, error) {
		return deps.NotificationUC.OwnerOf(c.Context(), id)
	}
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", RequireOwnership("id", notificationOwner), notificationHandler.MarkRead)

	// Automatización (protegido, regla propia del usuario)
	automationGroup := protected.Group("/automation", RequirePermission("leads:write"))
	automationHandler := NewAutomationHandler(deps.Engine)
	automationGroup.Get("/rules", automationHandler.GetRules)
	automationGroup.Post("/rules", automationHandler.SetRules)
	automationGroup.Post("/execute", automationHandler.Execute)
}
