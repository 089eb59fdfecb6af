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

	"github.com/gestorialegal/tramites-api/internal/application/auth"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	infraemail "github.com/gestorialegal/tramites-api/internal/infrastructure/email"
	inframp "github.com/gestorialegal/tramites-api/internal/infrastructure/mercadopago"
	infrapdf "github.com/gestorialegal/tramites-api/internal/infrastructure/pdf"
	"github.com/gestorialegal/tramites-api/internal/infrastructure/postgres"
	infrastorage "github.com/gestorialegal/tramites-api/internal/infrastructure/storage"
	httpRouter "github.com/gestorialegal/tramites-api/internal/interfaces/http"
	"github.com/gestorialegal/tramites-api/pkg/config"
	"github.com/gestorialegal/tramites-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	tramiteRepo := postgres.NewTramiteRepository(pool)
	histRepo := postgres.NewEtapaHistorialRepository(pool)
	notifRepo := postgres.NewNotificacionRepository(pool)
	docRepo := postgres.NewDocumentoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	mensajeRepo := postgres.NewMensajeRepository(pool)
	cuentaRepo := postgres.NewCuentaBancariaRepository(pool)
	dashRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	storage, err := infrastorage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración del storage S3")
	}
	emailSender := infraemail.NewSMTPSender(cfg.SMTP)
	mpClient := inframp.NewClient(cfg.MercadoPago)
	reportGen := infrapdf.NewMarotoReportGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tramiteUC := usecase.NewTramiteUseCase(txRunner, tramiteRepo, histRepo, cuentaRepo, userRepo)
	adminTramiteUC := usecase.NewAdminTramiteUseCase(txRunner, tramiteRepo, userRepo, storage, emailSender)
	documentoUC := usecase.NewDocumentoUseCase(txRunner, tramiteRepo, docRepo, userRepo, storage, emailSender)
	pagoUC := usecase.NewPagoUseCase(txRunner, tramiteRepo, pagoRepo, userRepo, storage, mpClient, emailSender)
	mensajeUC := usecase.NewMensajeUseCase(txRunner, tramiteRepo, mensajeRepo, userRepo)
	notificacionUC := usecase.NewNotificacionUseCase(notifRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashRepo, reportGen)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: el stream SSE de notificaciones mantiene la
		// respuesta abierta hasta su vida máxima configurada.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trámites API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TramiteUC:      tramiteUC,
		AdminTramiteUC: adminTramiteUC,
		DocumentoUC:    documentoUC,
		PagoUC:         pagoUC,
		MensajeUC:      mensajeUC,
		NotificacionUC: notificacionUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
		WebhookSecret:  cfg.MercadoPago.WebhookSecret,
		Env:            cfg.App.Env,
		Stream:         cfg.Stream,
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
