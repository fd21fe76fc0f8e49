package routes

import (
	"time"

	"ponto-backend/internal/auth"
	"ponto-backend/internal/handler"
	"ponto-backend/internal/middleware"
	"ponto-backend/internal/model"
	"ponto-backend/internal/report"
	"ponto-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB, tokens *auth.TokenIssuer, sender report.EmailSender, appName string, timeout time.Duration) {
	store := repository.NewReportStore(db)
	svc := report.NewService(store, store, sender, appName)
	hdl := handler.NewReportHandler(svc, timeout)

	admin := app.Group("/api/admin/reports", middleware.Auth(tokens), middleware.Role(model.RoleAdmin), handler.Localize)
	admin.Post("/monthly", hdl.Monthly)
}
