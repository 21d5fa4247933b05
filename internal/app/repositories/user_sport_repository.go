package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/dberrors"
)

// UserSportRepository handles database operations for user sport affinities.
type UserSportRepository interface {
	Create(ctx context.Context, userSport *models.UserSport) error
	UpdateLevel(ctx context.Context, id int64, level models.Level) error
	Delete(ctx context.Context, id int64) error
}

type userSportRepository struct {
	db *pgxpool.Pool
}

// NewUserSportRepository creates a new user sport repository
func NewUserSportRepository(db *pgxpool.Pool) UserSportRepository {
	return &userSportRepository{db: db}
}

func (r *userSportRepository) Create(ctx context.Context, userSport *models.UserSport) error {
	query := `
		INSERT INTO user_sports (user_id, sport_id, level)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, userSport.UserID, userSport.SportID, userSport.Level).
		Scan(&userSport.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "user_sports_user_id_sport_id_key") {
			return apperrors.NewCoded(400, "user already has this sport")
		}
		return apperrors.WrapRepo(err, "error creating user's sport")
	}
	return nil
}

func (r *userSportRepository) UpdateLevel(ctx context.Context, id int64, level models.Level) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE user_sports SET level = $1 WHERE id = $2`, level, id)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating user's sport")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "user sport not found")
	}
	return nil
}

func (r *userSportRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM user_sports WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound(apperrors.ErrSportNotFound, "user sport not found")
		}
		return apperrors.WrapRepo(err, "error deleting user's sport")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "user sport not found")
	}
	return nil
}
