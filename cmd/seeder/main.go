package main

import (
	"context"

	"ponto-backend/config"
	"ponto-backend/internal/database"
	"ponto-backend/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg := config.Load()
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Warn().Msg(".env not found, using system environment")
	}

	log.Info().Msg("seeding database")
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	created, err := database.SeedAll(context.Background(), repository.NewUserRepository(db))
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	if created {
		log.Info().Str("email", database.DefaultAdminEmail).Str("password", database.DefaultAdminPassword).
			Msg("change the default credentials after the first login")
	}
	log.Info().Msg("seeding finished")
}
