package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/api/http/handlers"
	"github.com/girmesh03/Task-Manager-V19/internal/auth"
	"github.com/girmesh03/Task-Manager-V19/internal/presence"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Organizations *handlers.OrganizationsHandler
	Departments   *handlers.DepartmentsHandler
	Users         *handlers.UsersHandler
	Tasks         *handlers.TasksHandler
	Materials     *handlers.MaterialsHandler
	Vendors       *handlers.VendorsHandler
	Notifications *handlers.NotificationsHandler
	Extractor     *auth.Extractor
	Tracker       *presence.Tracker
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/counters", cfg.Health.Counters)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/forgot", cfg.Auth.ForgotPassword)
	authGroup.Post("/password/reset", cfg.Auth.ResetPassword)

	// Everything below requires an authenticated actor with an active
	// user, department, and organization.
	protected := api.Group("", cfg.Extractor.Middleware(), presenceMiddleware(cfg.Tracker))

	protected.Post("/auth/logout", cfg.Auth.Logout)

	orgs := protected.Group("/organizations")
	orgs.Get("/", cfg.Organizations.List)
	orgs.Get("/:id", cfg.Organizations.Get)
	orgs.Patch("/:id", cfg.Organizations.Update)
	orgs.Delete("/:id", cfg.Organizations.Delete)
	orgs.Post("/:id/restore", cfg.Organizations.Restore)
	orgs.Delete("/:id/purge", cfg.Organizations.Purge)

	depts := protected.Group("/departments")
	depts.Post("/", cfg.Departments.Create)
	depts.Get("/", cfg.Departments.List)
	depts.Get("/:id", cfg.Departments.Get)
	depts.Patch("/:id", cfg.Departments.Update)
	depts.Delete("/:id", cfg.Departments.Delete)
	depts.Post("/:id/restore", cfg.Departments.Restore)

	users := protected.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/me", cfg.Users.Me)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
	users.Post("/:id/restore", cfg.Users.Restore)

	tasks := protected.Group("/tasks")
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Patch("/activities/:activityId", cfg.Tasks.UpdateActivity)
	tasks.Delete("/activities/:activityId", cfg.Tasks.DeleteActivity)
	tasks.Patch("/comments/:commentId", cfg.Tasks.UpdateComment)
	tasks.Delete("/comments/:commentId", cfg.Tasks.DeleteComment)
	tasks.Delete("/attachments/:attachmentId", cfg.Tasks.DeleteAttachment)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Patch("/:id", cfg.Tasks.Update)
	tasks.Patch("/:id/status", cfg.Tasks.ChangeStatus)
	tasks.Delete("/:id", cfg.Tasks.Delete)
	tasks.Post("/:id/restore", cfg.Tasks.Restore)
	tasks.Post("/:id/activities", cfg.Tasks.AddActivity)
	tasks.Get("/:id/activities", cfg.Tasks.ListActivities)
	tasks.Post("/:id/comments", cfg.Tasks.AddComment)
	tasks.Get("/:id/comments", cfg.Tasks.ListComments)
	tasks.Post("/:id/attachments", cfg.Tasks.AddAttachment)
	tasks.Get("/:id/attachments", cfg.Tasks.ListAttachments)

	materials := protected.Group("/materials")
	materials.Post("/", cfg.Materials.Create)
	materials.Get("/", cfg.Materials.List)
	materials.Get("/:id", cfg.Materials.Get)
	materials.Patch("/:id", cfg.Materials.Update)
	materials.Delete("/:id", cfg.Materials.Delete)
	materials.Post("/:id/restore", cfg.Materials.Restore)

	vendors := protected.Group("/vendors")
	vendors.Post("/", cfg.Vendors.Create)
	vendors.Get("/", cfg.Vendors.List)
	vendors.Get("/:id", cfg.Vendors.Get)
	vendors.Patch("/:id", cfg.Vendors.Update)
	vendors.Delete("/:id", cfg.Vendors.Delete)
	vendors.Post("/:id/restore", cfg.Vendors.Restore)

	notifications := protected.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Patch("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Patch("/:id/read", cfg.Notifications.MarkRead)

	protected.Post("/presence/heartbeat", cfg.Notifications.Heartbeat)
	protected.Get("/presence/:id", cfg.Notifications.Presence)
}
