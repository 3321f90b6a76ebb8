package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Garantias-api/internal/application/auth"
	"github.com/jhoicas/Garantias-api/internal/application/documents"
	"github.com/jhoicas/Garantias-api/internal/application/maintenance"
	"github.com/jhoicas/Garantias-api/internal/application/usecase"
	"github.com/jhoicas/Garantias-api/internal/application/warranty"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Garantias-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CompanyUC   *usecase.CompanyUseCase
	WarrantyUC  *warranty.UseCase
	DocumentsUC *documents.UseCase
	ResetUC     *maintenance.ResetUseCase // nil = endpoint de limpieza deshabilitado
	Metrics     *metrics.Metrics          // nil = registro nuevo
	Log         *logger.Logger
	ServiceName string
	UploadsDir  string
	UploadsURL  string // prefijo público, p.ej. "/uploads"
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app.Use(RequestLogger(deps.Log.Component("http"), deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	if deps.UploadsDir != "" && deps.UploadsURL != "" {
		app.Static(deps.UploadsURL, deps.UploadsDir)
	}

	api := app.Group("/api")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)

	// Auth (público)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/logout", authHandler.Logout)
	protected.Get("/me", authHandler.Me)

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/usuarios", adminOnly)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Configuración de empresa (admin) y vocabulario de estados
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	cfg := protected.Group("/configuracion", adminOnly)
	cfg.Get("/", companyHandler.Get)
	cfg.Put("/", companyHandler.Update)
	cfg.Post("/logo", companyHandler.UploadLogo)
	protected.Get("/estados", companyHandler.Statuses)

	// Garantías
	warrantyHandler := NewWarrantyHandler(deps.WarrantyUC, deps.Metrics)
	docHandler := NewDocumentHandler(deps.DocumentsUC)
	garantias := protected.Group("/garantias")
	garantias.Get("/export", adminOnly, docHandler.Export)
	garantias.Post("/", warrantyHandler.Create)
	garantias.Get("/", warrantyHandler.List)
	garantias.Get("/:id", warrantyHandler.Get)
	garantias.Patch("/:id/estado", warrantyHandler.ChangeStatus)
	garantias.Patch("/:id/valor", warrantyHandler.UpdateAmount)
	garantias.Patch("/:id/cliente", warrantyHandler.UpdateCustomer)
	garantias.Patch("/:id/asignar", warrantyHandler.Reassign)
	garantias.Post("/:id/comentarios", warrantyHandler.AddComment)
	garantias.Get("/:id/comentarios", warrantyHandler.ListComments)
	garantias.Get("/:id/recibo", docHandler.ReceiptHTML)
	garantias.Get("/:id/recibo/pdf", docHandler.ReceiptPDF)

	// Mantenimiento (admin, solo si está habilitado)
	if deps.ResetUC != nil {
		adminHandler := NewAdminHandler(deps.ResetUC, deps.Metrics)
		protected.Post("/admin/limpiar-datos", adminOnly, adminHandler.ResetData)
	}
}
