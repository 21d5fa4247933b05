package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// CourseSportService defines the interface for course sport membership operations
type CourseSportService interface {
	AddSportToCourse(ctx context.Context, courseID, sportID int64) (*models.CourseSport, error)
	RemoveSportFromCourse(ctx context.Context, courseSportID int64) error
	GetCourseSportByID(ctx context.Context, id int64) (*models.CourseSport, error)
}

// courseSportServiceImpl implements CourseSportService
type courseSportServiceImpl struct {
	courseSportRepo repositories.CourseSportRepository
	courseRepo      repositories.CourseRepository
	sportRepo       repositories.SportRepository
	logger          zerolog.Logger
}

// NewCourseSportService creates a new CourseSportService
func NewCourseSportService(
	courseSportRepo repositories.CourseSportRepository,
	courseRepo repositories.CourseRepository,
	sportRepo repositories.SportRepository,
	logger zerolog.Logger,
) CourseSportService {
	return &courseSportServiceImpl{
		courseSportRepo: courseSportRepo,
		courseRepo:      courseRepo,
		sportRepo:       sportRepo,
		logger:          logger,
	}
}

// AddSportToCourse attaches a sport to a course
func (s *courseSportServiceImpl) AddSportToCourse(ctx context.Context, courseID, sportID int64) (*models.CourseSport, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
		return nil, err
	}

	courseSport := &models.CourseSport{
		CourseID: courseID,
		SportID:  sportID,
	}
	if err := s.courseSportRepo.Create(ctx, courseSport); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("courseId", courseID).
		Int64("sportId", sportID).
		Msg("Sport added to course")

	return courseSport, nil
}

// RemoveSportFromCourse detaches a sport from its course. The last sport of a
// course can never be removed.
func (s *courseSportServiceImpl) RemoveSportFromCourse(ctx context.Context, courseSportID int64) error {
	courseSport, err := s.courseSportRepo.GetByID(ctx, courseSportID)
	if err != nil {
		return err
	}

	count, err := s.courseSportRepo.CountByCourse(ctx, courseSport.CourseID)
	if err != nil {
		return apperrors.WrapRepo(err, "failed to count course sports")
	}
	if count <= 1 {
		return apperrors.BadRequest(apperrors.ErrLastSportRemoval, "you cannot remove the only sport remaining in a course")
	}

	return s.courseSportRepo.Delete(ctx, courseSportID)
}

// GetCourseSportByID retrieves a single course sport membership
func (s *courseSportServiceImpl) GetCourseSportByID(ctx context.Context, id int64) (*models.CourseSport, error) {
	return s.courseSportRepo.GetByID(ctx, id)
}
