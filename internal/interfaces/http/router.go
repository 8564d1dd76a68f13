package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/DailyBooks-api/internal/application/analytics"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/application/workspace"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	AdminLogin  *auth.AdminLoginUseCase
	Workspaces  *workspace.Manager
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	JWTIssuer   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth remoto de administradores (público)
	authHandler := NewAuthHandler(deps.AdminLogin)
	api.Post("/auth/admin-login", authHandler.AdminLogin)

	// Sesión: login público, el resto con Bearer Token
	sessionHandler := NewSessionHandler(deps.Workspaces, deps.JWTSecret, deps.JWTIssuer, deps.Log)
	api.Post("/session/login", sessionHandler.Login)

	protected := api.Group("/", SessionMiddleware(deps.JWTSecret, deps.Workspaces))

	session := protected.Group("/session")
	session.Get("/", sessionHandler.Get)
	session.Post("/logout", sessionHandler.Logout)
	session.Put("/active-shop", sessionHandler.SetActiveShop)

	// Shops: lectura para cualquier sesión, escritura solo administradores globales
	shops := protected.Group("/shops")
	shopHandler := NewShopHandler()
	shops.Get("/", shopHandler.List)
	shops.Post("/", RequireGlobalAdmin(), shopHandler.Create)
	shops.Patch("/:id", RequireGlobalAdmin(), shopHandler.Update)
	shops.Delete("/:id", RequireGlobalAdmin(), shopHandler.Delete)

	// Salesmen de la tienda activa
	salesmen := protected.Group("/salesmen")
	salesmanHandler := NewSalesmanHandler()
	salesmen.Get("/", salesmanHandler.List)
	salesmen.Post("/", RequireAdminLike(), salesmanHandler.Create)
	salesmen.Patch("/:id", RequireAdminLike(), salesmanHandler.Update)
	salesmen.Delete("/:id", RequireAdminLike(), salesmanHandler.Delete)

	// Attendance: cualquier sesión marca; editar y borrar requiere gestión
	att := protected.Group("/attendance")
	attendanceHandler := NewAttendanceHandler()
	att.Get("/", attendanceHandler.List)
	att.Post("/punch", attendanceHandler.Punch)
	att.Patch("/:id", RequireAdminLike(), attendanceHandler.Update)
	att.Delete("/:id", RequireAdminLike(), attendanceHandler.Delete)

	settingsHandler := NewSettingsHandler()
	protected.Put("/settings/:key", RequireAdminLike(), settingsHandler.Update)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireAdminLike(), dashboardHandler.GetSummary)
}
