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

func SetupDashboardRoutes(app *fiber.App, db *gorm.DB, tokens *auth.TokenIssuer) {
	hdl := handler.NewDashboardHandler(repository.NewDashboardRepository(db), repository.NewTimeRecordRepository(db))

	admin := []fiber.Handler{middleware.Auth(tokens), middleware.Role(model.RoleAdmin)}
	app.Get("/api/admin/stats", append(admin, hdl.GetStats)...)
	app.Get("/api/admin/recent-records", append(admin, hdl.RecentRecords)...)
}
