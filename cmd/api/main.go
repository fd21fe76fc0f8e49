package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ponto-backend/config"
	"ponto-backend/internal/auth"
	"ponto-backend/internal/database"
	"ponto-backend/internal/geocode"
	"ponto-backend/internal/handler"
	"ponto-backend/internal/i18n"
	"ponto-backend/internal/mailer"
	"ponto-backend/internal/middleware"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Environment and logger
	envErr := godotenv.Load()
	cfg := config.Load()
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Warn().Msg(".env not found, using system environment")
	}

	if err := i18n.Init(cfg.Locale); err != nil {
		log.Fatal().Err(err).Msg("i18n init failed")
	}

	// 2. Database
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if _, err := database.SeedAll(context.Background(), repository.NewUserRepository(db)); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	// 3. Collaborators
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	geocoder := geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent)
	sender := mailer.NewSMTPSender(cfg.Mail)
	if !cfg.Mail.Enabled() {
		log.Warn().Msg("EMAIL_HOST/EMAIL_FROM not set, emailed reports will fail")
	}

	// 4. HTTP
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		BodyLimit:    1 << 20,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ReportTimeout + 10*time.Second,
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New())

	app.Get("/", handler.Health(cfg.AppName))
	app.Get("/health", handler.Health(cfg.AppName))

	routes.SetupAuthRoutes(app, db, tokens)
	routes.SetupTimeRecordRoutes(app, db, tokens, geocoder)
	routes.SetupDashboardRoutes(app, db, tokens)
	routes.SetupUserRoutes(app, db, tokens)
	routes.SetupSettingRoutes(app, db, tokens)
	routes.SetupReportRoutes(app, db, tokens, sender, cfg.AppName, cfg.ReportTimeout)

	// 5. Serve until SIGINT/SIGTERM
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("db", cfg.DBDriver).Msg("server ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
