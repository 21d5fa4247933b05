package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/db"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/helpers"
	"github.com/aurel/sportcourse/internal/pkg/logger"
)

// CourseRepository handles database operations for courses. The capacity
// counter is only ever written through Update (administrative) and the
// conditional Decrement/IncrementRemainingPlaces used by subscription
// transitions.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course, sportIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	GetCoachCourses(ctx context.Context, coachID int64) ([]*models.Course, error)
	Search(ctx context.Context, criteria *dto.CourseSearchCriteria) ([]*models.Course, error)
	DecrementRemainingPlaces(ctx context.Context, id int64) error
	IncrementRemainingPlaces(ctx context.Context, id int64) error
}

type courseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const courseColumns = `id, start_date, end_date, places, remaining_places, price, locations, levels, owner_id, created_at, updated_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	var locations, levels []byte
	err := row.Scan(
		&course.ID,
		&course.StartDate,
		&course.EndDate,
		&course.Places,
		&course.RemainingPlaces,
		&course.Price,
		&locations,
		&levels,
		&course.OwnerID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := helpers.DecodeList(locations, &course.Locations); err != nil {
		return nil, err
	}
	if err := helpers.DecodeList(levels, &course.Levels); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts the course and its sport memberships as one transaction, so
// a course is never visible without at least one sport.
func (r *courseRepository) Create(ctx context.Context, course *models.Course, sportIDs []int64) error {
	locations, err := helpers.EncodeList(course.Locations)
	if err != nil {
		return apperrors.WrapRepo(err, "error creating course")
	}
	levels, err := helpers.EncodeList(course.Levels)
	if err != nil {
		return apperrors.WrapRepo(err, "error creating course")
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO courses (start_date, end_date, places, remaining_places, price, locations, levels, owner_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			course.StartDate, course.EndDate, course.Places, course.RemainingPlaces,
			course.Price, locations, levels, course.OwnerID,
		).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
		if err != nil {
			return err
		}

		for _, sportID := range sportIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO course_sports (course_id, sport_id) VALUES ($1, $2)`,
				course.ID, sportID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.WrapRepo(err, "error creating course")
	}

	sports, err := r.loadSports(ctx, course.ID)
	if err != nil {
		return err
	}
	course.Sports = sports
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
		}
		return nil, apperrors.WrapRepo(err, "error fetching course")
	}

	sports, err := r.loadSports(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Sports = sports
	return course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	locations, err := helpers.EncodeList(course.Locations)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating course")
	}
	levels, err := helpers.EncodeList(course.Levels)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating course")
	}

	query := `
		UPDATE courses
		SET start_date = $1, end_date = $2, places = $3, remaining_places = $4,
		    price = $5, locations = $6, levels = $7, updated_at = $8
		WHERE id = $9
	`
	cmdTag, err := r.db.Exec(ctx, query,
		course.StartDate, course.EndDate, course.Places, course.RemainingPlaces,
		course.Price, locations, levels, time.Now(), course.ID)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating course")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return apperrors.WrapRepo(err, "error deleting course")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	return nil
}

func (r *courseRepository) GetCoachCourses(ctx context.Context, coachID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE owner_id = $1 ORDER BY start_date`, coachID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching coach's courses")
	}
	defer rows.Close()
	return r.collectCourses(ctx, rows)
}

// Search narrows courses by the present criteria. Categories combine with
// AND; multiple sports or locations are OR'd within their category.
func (r *courseRepository) Search(ctx context.Context, criteria *dto.CourseSearchCriteria) ([]*models.Course, error) {
	query := r.sb.Select(courseColumns).
		From("courses").
		OrderBy("start_date")

	if len(criteria.CoachIDs) > 0 {
		query = query.Where(squirrel.Eq{"owner_id": criteria.CoachIDs})
	}
	if len(criteria.SportIDs) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM course_sports cs WHERE cs.course_id = courses.id AND cs.sport_id = ANY(?))",
			criteria.SportIDs)
	}
	if criteria.MinDate != nil {
		query = query.Where(squirrel.GtOrEq{"start_date": *criteria.MinDate})
	}
	if criteria.MaxDate != nil {
		query = query.Where(squirrel.LtOrEq{"end_date": *criteria.MaxDate})
	}
	if len(criteria.Locations) > 0 {
		patterns := make([]string, len(criteria.Locations))
		for i, loc := range criteria.Locations {
			patterns[i] = "%" + loc + "%"
		}
		query = query.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(courses.locations) AS loc WHERE loc ILIKE ANY(?))",
			patterns)
	}
	if criteria.MinPlaces != nil {
		query = query.Where(squirrel.GtOrEq{"places": *criteria.MinPlaces})
	}
	if criteria.MaxPlaces != nil {
		query = query.Where(squirrel.LtOrEq{"places": *criteria.MaxPlaces})
	}
	if criteria.MinRemainingPlaces != nil {
		query = query.Where(squirrel.GtOrEq{"remaining_places": *criteria.MinRemainingPlaces})
	}
	if criteria.MaxRemainingPlaces != nil {
		query = query.Where(squirrel.LtOrEq{"remaining_places": *criteria.MaxRemainingPlaces})
	}
	if len(criteria.Levels) > 0 {
		levels := make([]string, len(criteria.Levels))
		for i, l := range criteria.Levels {
			levels[i] = string(l)
		}
		query = query.Where("jsonb_exists_any(courses.levels, ?)", levels)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course search SQL")
		return nil, apperrors.WrapRepo(err, "error searching courses")
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error searching courses")
	}
	defer rows.Close()
	return r.collectCourses(ctx, rows)
}

// DecrementRemainingPlaces reserves a seat with a conditional update, so two
// concurrent accepts can never drive the counter below zero.
func (r *courseRepository) DecrementRemainingPlaces(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET remaining_places = remaining_places - 1, updated_at = $1
		WHERE id = $2 AND remaining_places > 0
	`, time.Now(), id)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating course")
	}
	if cmdTag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
		}
		return apperrors.BadRequest(apperrors.ErrNoRemainingPlaces, "no remaining places in this course")
	}
	return nil
}

// IncrementRemainingPlaces releases a seat, capped at the course's total
// places so the counter never exceeds capacity.
func (r *courseRepository) IncrementRemainingPlaces(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET remaining_places = remaining_places + 1, updated_at = $1
		WHERE id = $2 AND remaining_places < places
	`, time.Now(), id)
	if err != nil {
		return apperrors.WrapRepo(err, "error updating course")
	}
	if cmdTag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
		}
		logger.Warn().Int64("courseID", id).Msg("Seat release skipped, course already at full capacity")
	}
	return nil
}

func (r *courseRepository) exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperrors.WrapRepo(err, "error fetching course")
	}
	return exists, nil
}

func (r *courseRepository) collectCourses(ctx context.Context, rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, apperrors.WrapRepo(err, "error fetching courses")
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching courses")
	}

	for _, course := range courses {
		sports, err := r.loadSports(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		course.Sports = sports
	}
	return courses, nil
}

func (r *courseRepository) loadSports(ctx context.Context, courseID int64) ([]models.CourseSport, error) {
	query := `
		SELECT cs.id, cs.course_id, cs.sport_id, s.id, s.name, s.description
		FROM course_sports cs
		JOIN sports s ON s.id = cs.sport_id
		WHERE cs.course_id = $1
		ORDER BY cs.id
	`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching course's sports")
	}
	defer rows.Close()

	var sports []models.CourseSport
	for rows.Next() {
		var cs models.CourseSport
		var sport models.Sport
		if err := rows.Scan(&cs.ID, &cs.CourseID, &cs.SportID,
			&sport.ID, &sport.Name, &sport.Description); err != nil {
			return nil, apperrors.WrapRepo(err, "error fetching course's sports")
		}
		cs.Sport = &sport
		sports = append(sports, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapRepo(err, "error fetching course's sports")
	}
	return sports, nil
}
