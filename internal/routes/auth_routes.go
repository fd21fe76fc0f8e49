package routes

import (
	"ponto-backend/internal/auth"
	deliveryhttp "ponto-backend/internal/delivery/http"
	"ponto-backend/internal/middleware"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, tokens *auth.TokenIssuer) {
	uc := usecase.NewAuthUsecase(repository.NewUserRepository(db), tokens)
	hdl := deliveryhttp.NewAuthHandler(uc)

	app.Post("/api/login", hdl.Login)

	authed := middleware.Auth(tokens)
	app.Get("/api/user", authed, hdl.Me)
	app.Post("/api/logout", authed, hdl.Logout)
	app.Post("/api/change-credentials", authed, hdl.ChangeCredentials)
}
