package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/dberrors"
	"github.com/aurel/sportcourse/internal/pkg/helpers"
)

// SportRepository handles database operations for the sport catalog.
type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id int64) (*models.Sport, error)
	GetAll(ctx context.Context) ([]*models.Sport, error)
	Update(ctx context.Context, sport *models.Sport) error
	Delete(ctx context.Context, id int64) error
}

type sportRepository struct {
	db *pgxpool.Pool
}

// NewSportRepository creates a new sport repository
func NewSportRepository(db *pgxpool.Pool) SportRepository {
	return &sportRepository{db: db}
}

func (r *sportRepository) Create(ctx context.Context, sport *models.Sport) error {
	query := `
		INSERT INTO sports (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, sport.Name, helpers.GetNullString(sport.Description)).
		Scan(&sport.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "sports_name_key") {
			return apperrors.NewCoded(400, "sport with this name already exists")
		}
		return apperrors.WrapRepo(err, "error creating sport")
	}
	return nil
}

func (r *sportRepository) GetByID(ctx context.Context, id int64) (*models.Sport, error) {
	var sport models.Sport
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description FROM sports WHERE id = $1`, id).
		Scan(&sport.ID, &sport.Name, &sport.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.ErrSportNotFound, "sport not found")
		}
		return nil, apperrors.WrapRepo(err, "error fetching sport")
	}
	return &sport, nil
}

func (r *sportRepository) GetAll(ctx context.Context) ([]*models.Sport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM sports ORDER BY name`)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching all sports")
	}
	defer rows.Close()

	var sports []*models.Sport
	for rows.Next() {
		var sport models.Sport
		if err := rows.Scan(&sport.ID, &sport.Name, &sport.Description); err != nil {
			return nil, apperrors.WrapRepo(err, "error fetching all sports")
		}
		sports = append(sports, &sport)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching all sports")
	}
	return sports, nil
}

func (r *sportRepository) Update(ctx context.Context, sport *models.Sport) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE sports SET name = $1, description = $2 WHERE id = $3`,
		sport.Name, helpers.GetNullString(sport.Description), sport.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "sports_name_key") {
			return apperrors.NewCoded(400, "sport with this name already exists")
		}
		return apperrors.WrapRepo(err, "error updating sport")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "sport not found")
	}
	return nil
}

func (r *sportRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sports WHERE id = $1`, id)
	if err != nil {
		return apperrors.WrapRepo(err, "error deleting sport")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "sport not found")
	}
	return nil
}
