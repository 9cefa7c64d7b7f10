package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/crm-pro/internal/application/auth"
	"github.com/tu-usuario/crm-pro/internal/application/automation"
	"github.com/tu-usuario/crm-pro/internal/application/usecase"
	"github.com/tu-usuario/crm-pro/internal/infrastructure/memory"
	"github.com/tu-usuario/crm-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/crm-pro/internal/interfaces/http"
	"github.com/tu-usuario/crm-pro/pkg/config"
	"github.com/tu-usuario/crm-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	apiKeyRepo := postgres.NewApiKeyRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	followupRepo := postgres.NewFollowupRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	roleUC := usecase.NewRoleUseCase(roleRepo, userRepo)
	if err := roleUC.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar roles del sistema")
	}

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		SessionTTL: cfg.JWT.SessionTTL,
		Issuer:     cfg.JWT.Issuer,
	})
	identity := auth.NewIdentityService(userRepo, roleRepo, apiKeyRepo)

	userUC := usecase.NewUserUseCase(userRepo, roleRepo)
	apiKeyUC := usecase.NewApiKeyUseCase(apiKeyRepo)
	leadUC := usecase.NewLeadUseCase(leadRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	quotationUC := usecase.NewQuotationUseCase(quotationRepo, clientRepo, txRunner)
	followupUC := usecase.NewFollowupUseCase(followupRepo, leadRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)

	// Las reglas de automatización viven en memoria: se pierden al reiniciar.
	ruleStore := memory.NewRuleStore()
	engine := automation.NewEngine(ruleStore, leadRepo, followupRepo, automation.NewRepoSink(notificationRepo))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Identity:       identity,
		RoleUC:         roleUC,
		UserUC:         userUC,
		ApiKeyUC:       apiKeyUC,
		LeadUC:         leadUC,
		ClientUC:       clientUC,
		QuotationUC:    quotationUC,
		FollowupUC:     followupUC,
		NotificationUC: notificationUC,
		Engine:         engine,
		JWTSecret:      cfg.JWT.Secret,
		SuperAdminList: cfg.Auth.SuperAdminEmails,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
