package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/auth"
)

type userFixture struct {
	service       UserService
	userRepo      *mockUserRepo
	userSportRepo *mockUserSportRepo
	sportRepo     *mockSportRepo
	courseRepo    *mockCourseRepo
}

func newUserFixture() *userFixture {
	userRepo := newMockUserRepo()
	userSportRepo := newMockUserSportRepo()
	sportRepo := newMockSportRepo()
	courseRepo := newMockCourseRepo()

	return &userFixture{
		service:       NewUserService(userRepo, userSportRepo, sportRepo, courseRepo, zerolog.Nop()),
		userRepo:      userRepo,
		userSportRepo: userSportRepo,
		sportRepo:     sportRepo,
		courseRepo:    courseRepo,
	}
}

func (f *userFixture) seedStudent(email string) *models.User {
	return f.userRepo.add(&models.User{
		Email:     email,
		FirstName: "Sam",
		LastName:  "Student",
		Roles:     []models.Role{models.RoleStudent},
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid email is refused", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		bad := "not-an-email"
		_, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{Email: &bad})
		if err == nil {
			t.Fatal("expected error for invalid email")
		}
		status, message := apperrors.Parse(err)
		if status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
		if message != "invalid email format" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("short password is refused", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		short := "abc"
		_, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{Password: &short})
		if err == nil {
			t.Fatal("expected error for short password")
		}
		if status, _ := apperrors.Parse(err); status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("a new password is stored hashed", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		password := "supersecret"
		updated, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{Password: &password})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}
		if updated.Password == password {
			t.Error("password stored in clear")
		}
		if !auth.CheckPassword(updated.Password, password) {
			t.Error("stored hash does not verify")
		}
	})

	t.Run("partial updates keep the other fields", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		first := "Samuel"
		updated, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{FirstName: &first})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}
		if updated.FirstName != "Samuel" {
			t.Errorf("firstName = %q", updated.FirstName)
		}
		if updated.LastName != "Student" {
			t.Errorf("lastName = %q", updated.LastName)
		}
	})

	t.Run("a sports list replaces the affinities", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")
		tennis := f.sportRepo.add(&models.Sport{Name: "Tennis"})
		judo := f.sportRepo.add(&models.Sport{Name: "Judo"})

		beginner := models.LevelBeginner
		existing := &models.UserSport{UserID: user.ID, SportID: tennis.ID, Level: &beginner}
		if err := f.userSportRepo.Create(ctx, existing); err != nil {
			t.Fatalf("seed user sport: %v", err)
		}
		user.Sports = []models.UserSport{*existing}

		advanced := models.LevelAdvanced
		_, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{
			Sports: []dto.UserSportInput{{ID: judo.ID, Level: &advanced}},
		})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}

		if _, ok := f.userSportRepo.affinities[existing.ID]; ok {
			t.Error("tennis affinity should have been removed")
		}
		found := false
		for _, us := range f.userSportRepo.affinities {
			if us.SportID == judo.ID {
				found = true
				if us.Level == nil || *us.Level != models.LevelAdvanced {
					t.Errorf("judo level = %v, want advanced", us.Level)
				}
			}
		}
		if !found {
			t.Error("judo affinity missing")
		}
	})

	t.Run("a level change updates the existing affinity", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")
		tennis := f.sportRepo.add(&models.Sport{Name: "Tennis"})

		beginner := models.LevelBeginner
		existing := &models.UserSport{UserID: user.ID, SportID: tennis.ID, Level: &beginner}
		if err := f.userSportRepo.Create(ctx, existing); err != nil {
			t.Fatalf("seed user sport: %v", err)
		}
		user.Sports = []models.UserSport{*existing}

		expert := models.LevelExpert
		_, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{
			Sports: []dto.UserSportInput{{ID: tennis.ID, Level: &expert}},
		})
		if err != nil {
			t.Fatalf("UpdateUser: %v", err)
		}

		stored, ok := f.userSportRepo.affinities[existing.ID]
		if !ok {
			t.Fatal("tennis affinity gone")
		}
		if stored.Level == nil || *stored.Level != models.LevelExpert {
			t.Errorf("level = %v, want expert", stored.Level)
		}
	})

	t.Run("an unknown sport in the list is refused", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		_, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{
			Sports: []dto.UserSportInput{{ID: 99}},
		})
		if err == nil {
			t.Fatal("expected error for unknown sport")
		}
		if _, message := apperrors.Parse(err); message != "sport id 99 not found" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("an unknown level is refused", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")
		tennis := f.sportRepo.add(&models.Sport{Name: "Tennis"})

		bogus := models.Level("grandmaster")
		_, err := f.service.UpdateUser(ctx, user.ID, &dto.UpdateUserRequest{
			Sports: []dto.UserSportInput{{ID: tennis.ID, Level: &bogus}},
		})
		if err == nil {
			t.Fatal("expected error for unknown level")
		}
		if status, _ := apperrors.Parse(err); status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
	})
}

func TestGrantCoachRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes a student", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		if err := f.service.GrantCoachRole(ctx, user.ID); err != nil {
			t.Fatalf("GrantCoachRole: %v", err)
		}
		stored, _ := f.userRepo.GetByID(ctx, user.ID)
		if !stored.HasRole(models.RoleCoach) {
			t.Error("coach role missing after grant")
		}
		if !stored.HasRole(models.RoleStudent) {
			t.Error("student role should be kept")
		}
	})

	t.Run("granting twice is refused", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		if err := f.service.GrantCoachRole(ctx, user.ID); err != nil {
			t.Fatalf("GrantCoachRole: %v", err)
		}
		err := f.service.GrantCoachRole(ctx, user.ID)
		if err == nil {
			t.Fatal("expected error granting twice")
		}
		if _, message := apperrors.Parse(err); message != "user is already a coach" {
			t.Errorf("message = %q", message)
		}
	})
}

func TestRevokeCoachRole(t *testing.T) {
	ctx := context.Background()

	t.Run("demotes a coach", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")
		if err := f.service.GrantCoachRole(ctx, user.ID); err != nil {
			t.Fatalf("GrantCoachRole: %v", err)
		}

		if err := f.service.RevokeCoachRole(ctx, user.ID); err != nil {
			t.Fatalf("RevokeCoachRole: %v", err)
		}
		stored, _ := f.userRepo.GetByID(ctx, user.ID)
		if stored.HasRole(models.RoleCoach) {
			t.Error("coach role still present after revoke")
		}
	})

	t.Run("revoking a non-coach is refused", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		err := f.service.RevokeCoachRole(ctx, user.ID)
		if err == nil {
			t.Fatal("expected error revoking a non-coach")
		}
		if _, message := apperrors.Parse(err); message != "user is already not a coach" {
			t.Errorf("message = %q", message)
		}
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("a coach profile carries their courses", func(t *testing.T) {
		f := newUserFixture()
		coach := f.userRepo.add(&models.User{
			Email: "coach@example.com",
			Roles: []models.Role{models.RoleCoach},
		})
		f.courseRepo.add(&models.Course{Places: 5, RemainingPlaces: 5, OwnerID: coach.ID})

		user, err := f.service.GetUserByID(ctx, coach.ID)
		if err != nil {
			t.Fatalf("GetUserByID: %v", err)
		}
		if len(user.OwnedCourses) != 1 {
			t.Errorf("ownedCourses = %d, want 1", len(user.OwnedCourses))
		}
	})

	t.Run("a student profile carries no courses", func(t *testing.T) {
		f := newUserFixture()
		user := f.seedStudent("sam@example.com")

		got, err := f.service.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID: %v", err)
		}
		if got.OwnedCourses != nil {
			t.Errorf("ownedCourses = %+v, want none", got.OwnedCourses)
		}
	})
}

func TestSearchCoachesService(t *testing.T) {
	ctx := context.Background()
	f := newUserFixture()
	coach := f.userRepo.add(&models.User{
		Email:     "carla@example.com",
		FirstName: "Carla",
		LastName:  "Coach",
		Roles:     []models.Role{models.RoleCoach},
	})
	f.seedStudent("sam@example.com")
	f.courseRepo.add(&models.Course{Places: 5, RemainingPlaces: 5, OwnerID: coach.ID})

	coaches, err := f.service.SearchCoaches(ctx, &dto.CoachSearchCriteria{Name: "carla"})
	if err != nil {
		t.Fatalf("SearchCoaches: %v", err)
	}
	if len(coaches) != 1 {
		t.Fatalf("len = %d, want 1", len(coaches))
	}
	if len(coaches[0].OwnedCourses) != 1 {
		t.Errorf("ownedCourses = %d, want 1", len(coaches[0].OwnedCourses))
	}
}
