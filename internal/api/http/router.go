package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/http/handlers"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Attachments    *handlers.AttachmentsHandler
	Audit          *handlers.AuditHandler
	SLAs           *handlers.SLAsHandler
	Areas          *handlers.AreasHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/assign", auth.RequireStaff(), cfg.Tickets.Assign)
	tickets.Post("/:id/status", auth.RequireStaff(), cfg.Tickets.ChangeStatus)
	tickets.Post("/:id/priority", auth.RequireStaff(), cfg.Tickets.ChangePriority)
	tickets.Post("/:id/resolve", auth.RequireStaff(), cfg.Tickets.Resolve)
	tickets.Post("/:id/close", cfg.Tickets.Close)
	tickets.Post("/:id/reopen", cfg.Tickets.Reopen)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.Delete)

	tickets.Post("/:id/comments", cfg.Comments.Add)
	tickets.Get("/:id/comments", cfg.Comments.List)

	tickets.Post("/:id/attachments", cfg.Attachments.Upload)
	tickets.Get("/:id/attachments", cfg.Attachments.List)
	tickets.Get("/:id/audit", auth.RequireStaff(), cfg.Audit.List)
	tickets.Get("/:id/sla", cfg.SLAs.TicketMetrics)

	attachments := app.Group("/attachments", cfg.AuthMiddleware.Handle)
	attachments.Get("/:id", cfg.Attachments.Download)
	attachments.Delete("/:id", auth.RequireStaff(), cfg.Attachments.Delete)

	slas := app.Group("/slas", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	slas.Post("", cfg.SLAs.Create)
	slas.Get("", cfg.SLAs.List)
	slas.Get("/:id", cfg.SLAs.Get)
	slas.Patch("/:id", cfg.SLAs.Update)
	slas.Delete("/:id", cfg.SLAs.Delete)

	areas := app.Group("/areas", cfg.AuthMiddleware.Handle)
	areas.Get("", cfg.Areas.List)
	areas.Get("/:id", cfg.Areas.Get)
	areas.Get("/:id/sla-compliance", auth.RequireStaff(), cfg.SLAs.Compliance)
	areas.Post("", auth.RequireAdmin(), cfg.Areas.Create)
	areas.Patch("/:id", auth.RequireAdmin(), cfg.Areas.Update)
	areas.Delete("/:id", auth.RequireAdmin(), cfg.Areas.Delete)
}
