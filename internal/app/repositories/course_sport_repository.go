package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/db"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/dberrors"
)

// CourseSportRepository handles database operations for course-sport
// membership rows.
type CourseSportRepository interface {
	Create(ctx context.Context, courseSport *models.CourseSport) error
	GetByID(ctx context.Context, id int64) (*models.CourseSport, error)
	Delete(ctx context.Context, id int64) error
	CountByCourse(ctx context.Context, courseID int64) (int, error)
	// ReplaceForCourse applies a membership diff as one transaction, adding
	// before removing so the course's sport set is never observed empty.
	ReplaceForCourse(ctx context.Context, courseID int64, addSportIDs []int64, removeIDs []int64) error
}

type courseSportRepository struct {
	db *pgxpool.Pool
}

// NewCourseSportRepository creates a new course sport repository
func NewCourseSportRepository(db *pgxpool.Pool) CourseSportRepository {
	return &courseSportRepository{db: db}
}

func (r *courseSportRepository) Create(ctx context.Context, courseSport *models.CourseSport) error {
	query := `
		INSERT INTO course_sports (course_id, sport_id)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, courseSport.CourseID, courseSport.SportID).
		Scan(&courseSport.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "course_sports_course_id_sport_id_key") {
			return apperrors.BadRequest(apperrors.ErrDuplicateCourseSport, "course already has this sport")
		}
		return apperrors.WrapRepo(err, "error creating course's sport")
	}
	return nil
}

func (r *courseSportRepository) GetByID(ctx context.Context, id int64) (*models.CourseSport, error) {
	var cs models.CourseSport
	err := r.db.QueryRow(ctx,
		`SELECT id, course_id, sport_id FROM course_sports WHERE id = $1`, id).
		Scan(&cs.ID, &cs.CourseID, &cs.SportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.ErrCourseSportNotFound, "course sport not found")
		}
		return nil, apperrors.WrapRepo(err, "error fetching course's sport")
	}
	return &cs, nil
}

func (r *courseSportRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM course_sports WHERE id = $1`, id)
	if err != nil {
		return apperrors.WrapRepo(err, "error deleting course's sport")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrCourseSportNotFound, "course sport not found")
	}
	return nil
}

func (r *courseSportRepository) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_sports WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, apperrors.WrapRepo(err, "error counting course's sports")
	}
	return count, nil
}

func (r *courseSportRepository) ReplaceForCourse(ctx context.Context, courseID int64, addSportIDs []int64, removeIDs []int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, sportID := range addSportIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO course_sports (course_id, sport_id) VALUES ($1, $2)
				 ON CONFLICT (course_id, sport_id) DO NOTHING`,
				courseID, sportID); err != nil {
				return err
			}
		}
		for _, id := range removeIDs {
			if _, err := tx.Exec(ctx,
				`DELETE FROM course_sports WHERE id = $1`, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.WrapRepo(err, "error replacing course's sports")
	}
	return nil
}
