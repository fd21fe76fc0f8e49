package database

import (
	"context"
	"fmt"

	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/usecase"

	"github.com/rs/zerolog/log"
)

const (
	DefaultAdminEmail    = "admin@cleanmyhouse.com"
	DefaultAdminPassword = "admin123"
)

// SeedAll creates the first admin when the users table is empty. It reports
// whether anything was created.
func SeedAll(ctx context.Context, users repository.UserRepository) (bool, error) {
	// 1. Skip when the system already has users
	n, err := users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		log.Info().Int64("users", n).Msg("users already exist, skip seeding")
		return false, nil
	}

	// 2. Initial admin with default credentials
	hashed, err := usecase.HashPassword(DefaultAdminPassword)
	if err != nil {
		return false, err
	}
	admin := model.User{
		Email:                DefaultAdminEmail,
		Password:             hashed,
		FirstName:            "Admin",
		LastName:             "Sistema",
		Role:                 model.RoleAdmin,
		IsActive:             true,
		IsDefaultCredentials: true,
	}
	if err := users.Create(ctx, &admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	log.Info().Str("email", DefaultAdminEmail).Msg("initial admin created")
	return true, nil
}
