package auth

import (
	"context"
	"testing"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// The stubs embed the repository interfaces and implement only the methods
// the authorization checks reach.

type stubUserRepo struct {
	repositories.UserRepository
	users map[int64]*models.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

type stubCourseRepo struct {
	repositories.CourseRepository
	courses map[int64]*models.Course
}

func (s *stubCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	return course, nil
}

type stubCourseSportRepo struct {
	repositories.CourseSportRepository
	memberships map[int64]*models.CourseSport
}

func (s *stubCourseSportRepo) GetByID(ctx context.Context, id int64) (*models.CourseSport, error) {
	cs, ok := s.memberships[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrCourseSportNotFound, "course sport not found")
	}
	return cs, nil
}

func newTestAuthz() *AuthorizationService {
	users := map[int64]*models.User{
		1: {ID: 1, Roles: []models.Role{models.RoleAdmin}},
		2: {ID: 2, Roles: []models.Role{models.RoleCoach}},
		3: {ID: 3, Roles: []models.Role{models.RoleStudent}},
	}
	courses := map[int64]*models.Course{
		10: {ID: 10, OwnerID: 2},
	}
	memberships := map[int64]*models.CourseSport{
		100: {ID: 100, CourseID: 10, SportID: 1},
	}
	return NewAuthorizationService(
		&stubUserRepo{users: users},
		&stubCourseRepo{courses: courses},
		&stubCourseSportRepo{memberships: memberships},
	)
}

func TestHasRole(t *testing.T) {
	ctx := context.Background()
	authz := newTestAuthz()

	if ok, err := authz.IsAdmin(ctx, 1); err != nil || !ok {
		t.Errorf("IsAdmin(admin) = %v, %v", ok, err)
	}
	if ok, err := authz.IsAdmin(ctx, 3); err != nil || ok {
		t.Errorf("IsAdmin(student) = %v, %v", ok, err)
	}
	if ok, err := authz.IsCoach(ctx, 2); err != nil || !ok {
		t.Errorf("IsCoach(coach) = %v, %v", ok, err)
	}
	if _, err := authz.IsAdmin(ctx, 99); err == nil {
		t.Error("expected error for unknown user")
	}
}

func TestCheckCourseOwnership(t *testing.T) {
	ctx := context.Background()
	authz := newTestAuthz()

	t.Run("the owner passes", func(t *testing.T) {
		if err := authz.CheckCourseOwnership(ctx, 2, 10); err != nil {
			t.Errorf("CheckCourseOwnership(owner) = %v", err)
		}
	})

	t.Run("an admin passes", func(t *testing.T) {
		if err := authz.CheckCourseOwnership(ctx, 1, 10); err != nil {
			t.Errorf("CheckCourseOwnership(admin) = %v", err)
		}
	})

	t.Run("anyone else is refused", func(t *testing.T) {
		err := authz.CheckCourseOwnership(ctx, 3, 10)
		if err == nil {
			t.Fatal("expected a permission error")
		}
		status, message := apperrors.Parse(err)
		if status != 403 {
			t.Errorf("status = %d, want 403", status)
		}
		if message != "the user is not the owner of this course" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("an unknown course surfaces a 404", func(t *testing.T) {
		err := authz.CheckCourseOwnership(ctx, 2, 99)
		if err == nil {
			t.Fatal("expected an error for an unknown course")
		}
		if status, _ := apperrors.Parse(err); status != 404 {
			t.Errorf("status = %d, want 404", status)
		}
	})
}

func TestCheckCourseSportOwnership(t *testing.T) {
	ctx := context.Background()
	authz := newTestAuthz()

	if err := authz.CheckCourseSportOwnership(ctx, 2, 100); err != nil {
		t.Errorf("CheckCourseSportOwnership(owner) = %v", err)
	}
	if err := authz.CheckCourseSportOwnership(ctx, 3, 100); err == nil {
		t.Error("expected a permission error")
	}
	if err := authz.CheckCourseSportOwnership(ctx, 2, 999); err == nil {
		t.Error("expected an error for an unknown membership")
	}
}
