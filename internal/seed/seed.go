package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/aurel/sportcourse/internal/app/models"
	appRepos "github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/auth"
)

var defaultSports = []appModels.Sport{
	{Name: "Tennis"},
	{Name: "Swimming"},
	{Name: "Climbing"},
	{Name: "Judo"},
	{Name: "Running"},
}

// CreateDefaultData seeds the sport catalog and the initial admin account.
// Existing rows are left untouched, so the seed is safe to run on every start.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	for _, sport := range defaultSports {
		s := sport
		if err := repos.SportRepository.Create(ctx, &s); err != nil {
			// The name is unique; an existing entry is fine.
			lgr.Debug().Str("sport", sport.Name).Msg("Sport already present, skipping")
			continue
		}
		lgr.Info().Str("sport", sport.Name).Msg("Seeded sport")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@sportcourse.app"
	}
	if _, err := repos.UserRepository.GetByEmail(ctx, adminEmail); err == nil {
		return finalErr
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		lgr.Warn().Msg("ADMIN_PASSWORD not set, skipping admin account seed")
		return finalErr
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:     adminEmail,
		Password:  hash,
		FirstName: "Admin",
		LastName:  "Admin",
		Roles:     []appModels.Role{appModels.RoleAdmin},
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Str("email", adminEmail).Msg("Seeded admin account")
	return finalErr
}
