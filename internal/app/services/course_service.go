package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/validation"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, ownerID int64, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourseByID(ctx context.Context, id int64, includeSubscriptions bool) (*models.Course, error)
	GetCoachCourses(ctx context.Context, coachID int64) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	SearchCourses(ctx context.Context, criteria *dto.CourseSearchCriteria) ([]*models.Course, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo       repositories.CourseRepository
	courseSportRepo  repositories.CourseSportRepository
	sportRepo        repositories.SportRepository
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
	logger           zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.CourseRepository,
	courseSportRepo repositories.CourseSportRepository,
	sportRepo repositories.SportRepository,
	userRepo repositories.UserRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:       courseRepo,
		courseSportRepo:  courseSportRepo,
		sportRepo:        sportRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (s *courseServiceImpl) checkLevels(levels []models.Level) error {
	if bad, ok := validation.CheckLevels(levels); !ok {
		return apperrors.BadRequest(apperrors.ErrValidationFailed,
			"course's levels attribute should be an array of levels, got %q", bad)
	}
	return nil
}

func (s *courseServiceImpl) checkRemainingPlaces(remaining, places int) error {
	if remaining < 0 {
		return apperrors.BadRequest(apperrors.ErrValidationFailed,
			"remainingPlaces (%d) cannot be negative", remaining)
	}
	if remaining > places {
		return apperrors.BadRequest(apperrors.ErrValidationFailed,
			"remainingPlaces (%d) cannot be higher than the course's place amount (%d)", remaining, places)
	}
	return nil
}

// CreateCourse creates a course owned by the given coach, together with its
// sport memberships. The whole write runs in a single transaction.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, ownerID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.checkLevels(req.Levels); err != nil {
		return nil, err
	}
	if len(req.SportIDs) == 0 {
		return nil, apperrors.BadRequest(apperrors.ErrValidationFailed, "course's sportIds array should not be empty")
	}
	if len(req.Locations) == 0 {
		return nil, apperrors.BadRequest(apperrors.ErrValidationFailed, "course's location array should not be empty")
	}

	for _, sportID := range req.SportIDs {
		if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
			return nil, apperrors.BadRequest(apperrors.ErrSportNotFound, "sport id %d not found", sportID)
		}
	}

	remaining := req.Places
	if req.RemainingPlaces != nil {
		if err := s.checkRemainingPlaces(*req.RemainingPlaces, req.Places); err != nil {
			return nil, err
		}
		remaining = *req.RemainingPlaces
	}

	course := &models.Course{
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Places:          req.Places,
		RemainingPlaces: remaining,
		Price:           req.Price,
		Locations:       req.Locations,
		Levels:          req.Levels,
		OwnerID:         ownerID,
	}
	if err := s.courseRepo.Create(ctx, course, req.SportIDs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("courseId", course.ID).
		Int64("ownerId", ownerID).
		Int("places", course.Places).
		Msg("Course created")

	return s.courseRepo.GetByID(ctx, course.ID)
}

// GetCourseByID retrieves a course with its owner's public profile attached.
// Subscriptions are only included for the owner or an admin.
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64, includeSubscriptions bool) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.attachOwner(ctx, course)

	if includeSubscriptions {
		subscriptions, err := s.subscriptionRepo.ListByCourse(ctx, id)
		if err != nil {
			return nil, apperrors.WrapRepo(err, "failed to retrieve course subscriptions")
		}
		for _, sub := range subscriptions {
			course.Subscriptions = append(course.Subscriptions, *sub)
		}
	}

	return course, nil
}

// GetCoachCourses lists the courses owned by a coach
func (s *courseServiceImpl) GetCoachCourses(ctx context.Context, coachID int64) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetCoachCourses(ctx, coachID)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to retrieve coach courses")
	}
	return courses, nil
}

// UpdateCourse applies a partial update to a course. A provided sportIds list
// replaces the sport memberships as one unit and may never leave the course
// without a sport.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.checkLevels(req.Levels); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RemainingPlaces != nil {
		if err := s.checkRemainingPlaces(*req.RemainingPlaces, course.Places); err != nil {
			return nil, err
		}
	}

	if req.SportIDs != nil {
		if len(req.SportIDs) == 0 {
			return nil, apperrors.BadRequest(apperrors.ErrEmptySportList, "a course must have at least one sport")
		}
		for _, sportID := range req.SportIDs {
			if _, err := s.sportRepo.GetByID(ctx, sportID); err != nil {
				return nil, apperrors.BadRequest(apperrors.ErrSportNotFound, "sport id %d not found", sportID)
			}
		}

		desired := make(map[int64]bool, len(req.SportIDs))
		for _, sportID := range req.SportIDs {
			desired[sportID] = true
		}
		current := make(map[int64]int64, len(course.Sports))
		for _, cs := range course.Sports {
			current[cs.SportID] = cs.ID
		}

		var addSportIDs []int64
		for _, sportID := range req.SportIDs {
			if _, ok := current[sportID]; !ok {
				addSportIDs = append(addSportIDs, sportID)
			}
		}
		var removeIDs []int64
		for sportID, courseSportID := range current {
			if !desired[sportID] {
				removeIDs = append(removeIDs, courseSportID)
			}
		}

		if len(addSportIDs) > 0 || len(removeIDs) > 0 {
			if err := s.courseSportRepo.ReplaceForCourse(ctx, id, addSportIDs, removeIDs); err != nil {
				return nil, err
			}
		}
	}

	if req.StartDate != nil {
		course.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		course.EndDate = *req.EndDate
	}
	if req.Places != nil {
		course.Places = *req.Places
	}
	if req.RemainingPlaces != nil {
		course.RemainingPlaces = *req.RemainingPlaces
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Locations != nil {
		if len(req.Locations) == 0 {
			return nil, apperrors.BadRequest(apperrors.ErrValidationFailed, "course's location array should not be empty")
		}
		course.Locations = req.Locations
	}
	if req.Levels != nil {
		course.Levels = req.Levels
	}

	// Shrinking places below the current remaining count would break the
	// ledger invariant, so clamp the check here rather than let the database
	// constraint surface as a 500.
	if err := s.checkRemainingPlaces(course.RemainingPlaces, course.Places); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse removes a course and its dependent rows
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

// SearchCourses filters the course directory. A coach name is resolved to
// coach ids first; when no coach matches, the result is empty without hitting
// the course table at all.
func (s *courseServiceImpl) SearchCourses(ctx context.Context, criteria *dto.CourseSearchCriteria) ([]*models.Course, error) {
	if err := s.checkLevels(criteria.Levels); err != nil {
		return nil, err
	}

	if criteria.CoachName != "" {
		coaches, err := s.userRepo.SearchCoaches(ctx, criteria.CoachName)
		if err != nil {
			return nil, apperrors.WrapRepo(err, "failed to search coaches")
		}
		if len(coaches) == 0 {
			return []*models.Course{}, nil
		}
		criteria.CoachIDs = make([]int64, 0, len(coaches))
		for _, coach := range coaches {
			criteria.CoachIDs = append(criteria.CoachIDs, coach.ID)
		}
	}

	courses, err := s.courseRepo.Search(ctx, criteria)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to search courses")
	}

	for _, course := range courses {
		s.attachOwner(ctx, course)
	}
	return courses, nil
}

// attachOwner swaps the raw owner id for the owner's public profile
func (s *courseServiceImpl) attachOwner(ctx context.Context, course *models.Course) {
	owner, err := s.userRepo.GetByID(ctx, course.OwnerID)
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("courseId", course.ID).
			Int64("ownerId", course.OwnerID).
			Msg("Failed to load course owner")
		return
	}
	course.Owner = owner.Public()
	course.OwnerID = 0
}
