package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/repairnotes-api/internal/application/analytics"
	"github.com/jhoicas/repairnotes-api/internal/application/auth"
	"github.com/jhoicas/repairnotes-api/internal/application/dto"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	NoteUC        *usecase.NoteUseCase
	UserUC        *usecase.UserUseCase
	AnalyticsUC   *usecase.AnalyticsUseCase
	ReportUC      *analytics.ReportUseCase
	Verifier      accessVerifier
	Throttle      loginThrottle
	AvatarFiles   avatarOpener // nil = avatares en disco, servidos con app.Static
	Cookie        CookieConfig
	PublicBaseURL string
	ServiceName   string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	if deps.AvatarFiles != nil {
		app.Get("/uploads/:name", NewAvatarHandler(deps.AvatarFiles).Serve)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := app.Group("/auth")
	authGroup.Post("/", LoginLimiter(deps.Throttle, deps.Log), authHandler.Login)
	authGroup.Get("/refresh", authHandler.Refresh)
	authGroup.Get("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.Verifier)

	notes := app.Group("/notes", requireAuth)
	noteHandler := NewNoteHandler(deps.NoteUC)
	notes.Get("/", noteHandler.List)
	notes.Post("/", noteHandler.Create)
	notes.Patch("/", noteHandler.Update)
	notes.Delete("/", noteHandler.Delete)

	users := app.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC, deps.PublicBaseURL)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/", userHandler.Update)
	users.Delete("/", userHandler.Delete)

	an := app.Group("/analytics", requireAuth)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, deps.ReportUC)
	an.Get("/", analyticsHandler.Summary)
	an.Get("/notes-repair-trend", analyticsHandler.RepairTrend)
	an.Get("/user-notes-stats", analyticsHandler.UserNoteStats)
	an.Get("/active-users", analyticsHandler.ActiveUsers)
	an.Get("/employee-performance", analyticsHandler.EmployeePerformance)
	an.Get("/repair-time-distribution", analyticsHandler.RepairTimeDistribution)
	an.Get("/notes-creation-trend", analyticsHandler.CreationTrend)
	an.Get("/report", analyticsHandler.Report)
}
