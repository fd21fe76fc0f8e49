package routes

import (
	"ponto-backend/internal/auth"
	"ponto-backend/internal/handler"
	"ponto-backend/internal/middleware"
	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB, tokens *auth.TokenIssuer) {
	hdl := handler.NewUserHandler(repository.NewUserRepository(db))

	admin := app.Group("/api/admin/users", middleware.Auth(tokens), middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.List)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Deactivate)
}
