package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nusabank/onboarding-api/internal/application/auth"
	"github.com/nusabank/onboarding-api/internal/application/registration"
	"github.com/nusabank/onboarding-api/internal/infrastructure/dukcapil"
	"github.com/nusabank/onboarding-api/internal/infrastructure/postgres"
	httpRouter "github.com/nusabank/onboarding-api/internal/interfaces/http"
	"github.com/nusabank/onboarding-api/pkg/config"
	"github.com/nusabank/onboarding-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registryClient := dukcapil.NewClient(
		cfg.Dukcapil.BaseURL,
		cfg.Dukcapil.VerifyEndpoint,
		cfg.Dukcapil.CheckEndpoint,
		cfg.Dukcapil.Timeout(),
		log,
	)

	codeGen := registration.NewCodeGenerator(customerRepo)
	registrationUC := registration.NewUseCase(customerRepo, registryClient, codeGen, log)

	attempts := auth.NewLoginAttemptService(txRunner, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutMinutes, log)
	authUC := auth.NewUseCase(customerRepo, attempts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistrationUC: registrationUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
