package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

type courseSportFixture struct {
	service         CourseSportService
	courseRepo      *mockCourseRepo
	sportRepo       *mockSportRepo
	courseSportRepo *mockCourseSportRepo

	course *models.Course
	tennis *models.Sport
	judo   *models.Sport
}

func newCourseSportFixture() *courseSportFixture {
	courseRepo := newMockCourseRepo()
	sportRepo := newMockSportRepo()
	courseSportRepo := newMockCourseSportRepo()

	f := &courseSportFixture{
		service:         NewCourseSportService(courseSportRepo, courseRepo, sportRepo, zerolog.Nop()),
		courseRepo:      courseRepo,
		sportRepo:       sportRepo,
		courseSportRepo: courseSportRepo,
	}
	f.course = courseRepo.add(&models.Course{Places: 10, RemainingPlaces: 10, OwnerID: 1})
	f.tennis = sportRepo.add(&models.Sport{Name: "Tennis"})
	f.judo = sportRepo.add(&models.Sport{Name: "Judo"})
	return f
}

func TestAddSportToCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches a sport", func(t *testing.T) {
		f := newCourseSportFixture()

		cs, err := f.service.AddSportToCourse(ctx, f.course.ID, f.tennis.ID)
		if err != nil {
			t.Fatalf("AddSportToCourse: %v", err)
		}
		if cs.CourseID != f.course.ID || cs.SportID != f.tennis.ID {
			t.Errorf("membership = %+v", cs)
		}
		if cs.ID == 0 {
			t.Error("membership id not assigned")
		}
	})

	t.Run("unknown course is refused", func(t *testing.T) {
		f := newCourseSportFixture()

		_, err := f.service.AddSportToCourse(ctx, 99, f.tennis.ID)
		if err == nil {
			t.Fatal("expected error for unknown course")
		}
		if status, _ := apperrors.Parse(err); status != 404 {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("unknown sport is refused", func(t *testing.T) {
		f := newCourseSportFixture()

		_, err := f.service.AddSportToCourse(ctx, f.course.ID, 99)
		if err == nil {
			t.Fatal("expected error for unknown sport")
		}
		if status, _ := apperrors.Parse(err); status != 404 {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("duplicate membership is refused", func(t *testing.T) {
		f := newCourseSportFixture()

		if _, err := f.service.AddSportToCourse(ctx, f.course.ID, f.tennis.ID); err != nil {
			t.Fatalf("AddSportToCourse: %v", err)
		}
		_, err := f.service.AddSportToCourse(ctx, f.course.ID, f.tennis.ID)
		if err == nil {
			t.Fatal("expected error for duplicate membership")
		}
		if status, _ := apperrors.Parse(err); status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
	})
}

func TestRemoveSportFromCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("the last sport cannot be removed", func(t *testing.T) {
		f := newCourseSportFixture()
		cs, _ := f.service.AddSportToCourse(ctx, f.course.ID, f.tennis.ID)

		err := f.service.RemoveSportFromCourse(ctx, cs.ID)
		if err == nil {
			t.Fatal("expected error removing the last sport")
		}
		status, message := apperrors.Parse(err)
		if status != 400 {
			t.Errorf("status = %d, want 400", status)
		}
		if message != "you cannot remove the only sport remaining in a course" {
			t.Errorf("message = %q", message)
		}
	})

	t.Run("a sport can be removed while another remains", func(t *testing.T) {
		f := newCourseSportFixture()
		first, _ := f.service.AddSportToCourse(ctx, f.course.ID, f.tennis.ID)
		if _, err := f.service.AddSportToCourse(ctx, f.course.ID, f.judo.ID); err != nil {
			t.Fatalf("AddSportToCourse: %v", err)
		}

		if err := f.service.RemoveSportFromCourse(ctx, first.ID); err != nil {
			t.Fatalf("RemoveSportFromCourse: %v", err)
		}
		count, _ := f.courseSportRepo.CountByCourse(ctx, f.course.ID)
		if count != 1 {
			t.Errorf("membership count = %d, want 1", count)
		}
	})

	t.Run("unknown membership is refused", func(t *testing.T) {
		f := newCourseSportFixture()

		err := f.service.RemoveSportFromCourse(ctx, 99)
		if err == nil {
			t.Fatal("expected error for unknown membership")
		}
		if status, _ := apperrors.Parse(err); status != 404 {
			t.Errorf("status = %d, want 404", status)
		}
	})
}
