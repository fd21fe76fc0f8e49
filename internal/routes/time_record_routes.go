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

func SetupTimeRecordRoutes(app *fiber.App, db *gorm.DB, tokens *auth.TokenIssuer, geocoder handler.Geocoder) {
	repo := repository.NewTimeRecordRepository(db)
	hdl := handler.NewTimeRecordHandler(repo, geocoder)

	// Punches of the logged in user
	api := app.Group("/api/time-records", middleware.Auth(tokens))
	api.Post("/", hdl.Create)
	api.Get("/today", hdl.Today)
	api.Get("/monthly", hdl.Monthly)

	// Bulk purge
	app.Delete("/api/admin/time-records", middleware.Auth(tokens), middleware.Role(model.RoleAdmin), hdl.Purge)
}
