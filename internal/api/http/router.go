package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rental-portal/internal/api/http/handlers"
	"github.com/spec-kit/rental-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Users      *handlers.UsersHandler
	Properties *handlers.PropertiesHandler
	Enquiries  *handlers.EnquiriesHandler
	Guard      *auth.GuardMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Resolve)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/otp/verify", cfg.Auth.VerifyOTP)
	authGroup.Post("/password/forgot", cfg.Auth.ForgotPassword)
	authGroup.Post("/password/reset", cfg.Auth.ResetPassword)
	authGroup.Post("/logout", cfg.Guard.Require(auth.RequireAuthenticated), cfg.Auth.Logout)

	app.Get("/me", cfg.Guard.Require(auth.RequireAuthenticated), cfg.Auth.Me)
	app.Put("/me", cfg.Guard.Require(auth.RequireAuthenticated), cfg.Auth.UpdateProfile)

	app.Get("/properties", cfg.Properties.Browse)
	app.Get("/properties/:id", cfg.Properties.Detail)
	app.Post("/enquiries", cfg.Enquiries.Submit)
	app.Post("/contact", cfg.Enquiries.SubmitContact)

	owner := app.Group("/owner", cfg.Guard.Require(auth.RequireOwner))
	owner.Get("/properties", cfg.Properties.OwnerList)
	owner.Post("/properties", cfg.Properties.Create)
	owner.Put("/properties/:id", cfg.Properties.Update)
	owner.Delete("/properties/:id", cfg.Properties.Delete)

	admin := app.Group("/admin", cfg.Guard.Require(auth.RequireAdmin))
	admin.Get("/dashboard", cfg.Dashboard.Stats)
	admin.Get("/users", cfg.Users.List)
	admin.Delete("/users/:id", cfg.Users.Delete)
	admin.Get("/properties", cfg.Properties.AdminList)
	admin.Delete("/properties/:id", cfg.Properties.Delete)
	admin.Get("/enquiries", cfg.Enquiries.List)
	admin.Delete("/enquiries/:id", cfg.Enquiries.Delete)
	admin.Get("/contacts", cfg.Enquiries.ListContacts)
	admin.Delete("/contacts/:id", cfg.Enquiries.DeleteContact)
}
