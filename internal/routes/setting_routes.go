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

func SetupSettingRoutes(app *fiber.App, db *gorm.DB, tokens *auth.TokenIssuer) {
	hdl := handler.NewSettingHandler(repository.NewSettingRepository(db))

	admin := app.Group("/api/admin/settings", middleware.Auth(tokens), middleware.Role(model.RoleAdmin))
	admin.Get("/:key", hdl.Get)
	admin.Post("/", hdl.Set)
}
