package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/gestorialegal/tramites-api/internal/application/auth"
	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	TramiteUC      *usecase.TramiteUseCase
	AdminTramiteUC *usecase.AdminTramiteUseCase
	DocumentoUC    *usecase.DocumentoUseCase
	PagoUC         *usecase.PagoUseCase
	MensajeUC      *usecase.MensajeUseCase
	NotificacionUC *usecase.NotificacionUseCase
	DashboardUC    *usecase.DashboardUseCase
	JWTSecret      string
	WebhookSecret  string
	Env            string
	Stream         config.StreamConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	exponerDetalleErrores = deps.Env != "production"

	api := app.Group("/api")

	// Auth (público, con rate limit por IP contra fuerza bruta)
	authGroup := api.Group("/auth", limiter.New(limiter.Config{
		Max:               20,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks (público: autentica por firma, no por JWT)
	webhooks := api.Group("/webhooks", limiter.New(limiter.Config{
		Max:               60,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))
	webhookHandler := NewWebhookHandler(deps.PagoUC, deps.WebhookSecret)
	webhooks.Post("/mercadopago", webhookHandler.MercadoPago)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Trámites del cliente (el dueño siempre accede; el staff también)
	tramites := protected.Group("/tramites")
	tramiteHandler := NewTramiteHandler(deps.TramiteUC)
	tramites.Post("/", tramiteHandler.Create)
	tramites.Get("/", tramiteHandler.List)
	tramites.Get("/:id", tramiteHandler.GetByID)
	tramites.Get("/:id/historial", tramiteHandler.Historial)
	tramites.Put("/:id/formulario", tramiteHandler.ActualizarFormulario)
	tramites.Post("/:id/cuenta-bancaria", tramiteHandler.CrearCuentaBancaria)

	// Documentos del trámite
	documentoHandler := NewDocumentoHandler(deps.DocumentoUC)
	tramites.Post("/:id/documentos", documentoHandler.Subir)
	tramites.Get("/:id/documentos", documentoHandler.List)

	// Pagos del trámite
	pagoHandler := NewPagoHandler(deps.PagoUC)
	tramites.Post("/:id/pagos", pagoHandler.Crear)
	tramites.Get("/:id/pagos", pagoHandler.List)

	// Chat del trámite
	mensajeHandler := NewMensajeHandler(deps.MensajeUC)
	tramites.Post("/:id/mensajes", mensajeHandler.Enviar)
	tramites.Get("/:id/mensajes", mensajeHandler.List)
	tramites.Put("/:id/mensajes/lectura", mensajeHandler.MarcarLeidos)

	// Notificaciones del caller
	notificaciones := protected.Group("/notificaciones")
	notificacionHandler := NewNotificacionHandler(deps.NotificacionUC, deps.Stream)
	notificaciones.Get("/", notificacionHandler.List)
	notificaciones.Get("/stream", notificacionHandler.Stream)
	notificaciones.Put("/lectura", notificacionHandler.MarcarTodasLeidas)
	notificaciones.Put("/:id/lectura", notificacionHandler.MarcarLeida)

	// Administración (solo staff: admin y gestor)
	admin := protected.Group("/admin", RequireStaff())
	adminHandler := NewAdminTramiteHandler(deps.AdminTramiteUC)
	admin.Get("/tramites", adminHandler.Buscar)
	admin.Put("/tramites/:id/estado", adminHandler.CambiarEstado)
	admin.Put("/tramites/:id/etapa", adminHandler.CambiarEtapa)
	admin.Put("/tramites/:id/validacion", adminHandler.Validar)
	admin.Put("/tramites/:id/nombre", adminHandler.AprobarNombre)
	admin.Post("/tramites/:id/inscripcion", adminHandler.RegistrarInscripcion)
	admin.Delete("/tramites/:id", adminHandler.Eliminar)

	admin.Put("/documentos/:id/revision", documentoHandler.Revisar)

	admin.Post("/tramites/:id/pagos", pagoHandler.CrearManual)
	admin.Put("/pagos/:id/confirmacion", pagoHandler.ConfirmarTransferencia)

	// Tablero y exports (solo staff)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	admin.Get("/dashboard", dashboardHandler.Resumen)
	admin.Get("/tramites/export.csv", dashboardHandler.ExportCSV)
	admin.Get("/tramites/export.pdf", dashboardHandler.ExportPDF)
}
