package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskvault/go-todo/handlers"
	"github.com/taskvault/go-todo/middleware"
)

func SetupRoutes(app *fiber.App) {
	app.Get("/health", handlers.HandleHealthCheck)

	auth := app.Group("/auth")
	auth.Post("/register", handlers.RegisterHandler)
	auth.Post("/login", handlers.LoginHandler)
	auth.Get("/me", middleware.JWTMiddleware, handlers.MeHandler)
	auth.Post("/logout", handlers.LogoutHandler)

	api := app.Group("/api", middleware.JWTMiddleware)

	api.Get("/todos", handlers.HandleAllTodos)
	api.Post("/todos", handlers.HandleCreateTodo)
	api.Get("/todos/:id", handlers.HandleGetOneTodo)
	api.Put("/todos/:id", handlers.HandleUpdateTodo)
	api.Delete("/todos/:id", middleware.RequirePermission("delete-todo"), handlers.HandleDeleteTodo)

	api.Get("/todos/:id/pdf", middleware.RequirePermission("export-todo"), handlers.HandleTodoPDF)
	api.Post("/send-email", middleware.RequirePermission("send-email"), handlers.HandleSendEmail)

	users := api.Group("/users", middleware.RequirePermission("manage-users"))
	users.Get("/", handlers.HandleListUsers)
	users.Delete("/:id", handlers.HandleDeleteUser)
	users.Put("/:id/role", handlers.HandleUpdateUserRole)
	users.Put("/:id/status", handlers.HandleUpdateUserStatus)

	api.Get("/roles", handlers.HandleListRoles)
	api.Get("/permissions", handlers.HandleListPermissions)
	api.Get("/role-permissions/:role_id", handlers.HandleRolePermissions)
	api.Put("/role-permissions/:role_id", middleware.RequirePermission("manage-permissions"), handlers.HandleReplaceRolePermissions)
}
