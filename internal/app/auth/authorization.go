package auth

import (
	"context"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// AuthorizationService answers access questions for controllers. It only
// decides who may act; the business rules live in the services.
type AuthorizationService struct {
	userRepo        repositories.UserRepository
	courseRepo      repositories.CourseRepository
	courseSportRepo repositories.CourseSportRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	courseSportRepo repositories.CourseSportRepository,
) *AuthorizationService {
	return &AuthorizationService{
		userRepo:        userRepo,
		courseRepo:      courseRepo,
		courseSportRepo: courseSportRepo,
	}
}

// HasRole reports whether the user holds the given role
func (s *AuthorizationService) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.HasRole(role), nil
}

// IsAdmin reports whether the user is an administrator
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.HasRole(ctx, userID, models.RoleAdmin)
}

// IsCoach reports whether the user is a coach
func (s *AuthorizationService) IsCoach(ctx context.Context, userID int64) (bool, error) {
	return s.HasRole(ctx, userID, models.RoleCoach)
}

// IsCourseOwner reports whether the user owns the course
func (s *AuthorizationService) IsCourseOwner(ctx context.Context, userID, courseID int64) (bool, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return false, err
	}
	return course.OwnerID == userID, nil
}

// IsAdminOrCourseOwner reports whether the user is an admin or owns the course
func (s *AuthorizationService) IsAdminOrCourseOwner(ctx context.Context, userID, courseID int64) (bool, error) {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return false, err
	}
	if isAdmin {
		return true, nil
	}
	return s.IsCourseOwner(ctx, userID, courseID)
}

// CheckCourseOwnership fails with a 403 unless the user is an admin or the
// owner of the course.
func (s *AuthorizationService) CheckCourseOwnership(ctx context.Context, userID, courseID int64) error {
	allowed, err := s.IsAdminOrCourseOwner(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.Forbidden(apperrors.ErrPermissionDenied, "the user is not the owner of this course")
	}
	return nil
}

// CheckCourseSportOwnership resolves a course sport membership to its course
// and applies the same ownership rule.
func (s *AuthorizationService) CheckCourseSportOwnership(ctx context.Context, userID, courseSportID int64) error {
	courseSport, err := s.courseSportRepo.GetByID(ctx, courseSportID)
	if err != nil {
		return err
	}
	return s.CheckCourseOwnership(ctx, userID, courseSport.CourseID)
}
