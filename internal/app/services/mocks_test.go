package services

import (
	"context"
	"strings"
	"time"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// In-memory repository doubles used by the service tests.

type mockUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (m *mockUserRepo) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	} else if user.ID >= m.nextID {
		m.nextID = user.ID + 1
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return apperrors.BadRequest(apperrors.ErrEmailAlreadyUsed, "email already used")
		}
	}
	m.add(user)
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
}

func (m *mockUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range m.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.NotFound(apperrors.ErrUserNotFound, "user not found")
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) SearchCoaches(ctx context.Context, name string) ([]*models.User, error) {
	var coaches []*models.User
	for _, user := range m.users {
		if !user.HasRole(models.RoleCoach) {
			continue
		}
		if name != "" &&
			!strings.Contains(strings.ToLower(user.FirstName), strings.ToLower(name)) &&
			!strings.Contains(strings.ToLower(user.LastName), strings.ToLower(name)) {
			continue
		}
		copied := *user
		coaches = append(coaches, &copied)
	}
	return coaches, nil
}

type mockCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64

	decrements int
	increments int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*models.Course), nextID: 1}
}

func (m *mockCourseRepo) add(course *models.Course) *models.Course {
	if course.ID == 0 {
		course.ID = m.nextID
		m.nextID++
	} else if course.ID >= m.nextID {
		m.nextID = course.ID + 1
	}
	m.courses[course.ID] = course
	return course
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course, sportIDs []int64) error {
	m.add(course)
	for _, sportID := range sportIDs {
		course.Sports = append(course.Sports, models.CourseSport{
			ID:       int64(len(course.Sports) + 1),
			CourseID: course.ID,
			SportID:  sportID,
		})
	}
	return nil
}

func (m *mockCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	copied := *course
	copied.Sports = append([]models.CourseSport(nil), course.Sports...)
	return &copied, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, course *models.Course) error {
	stored, ok := m.courses[course.ID]
	if !ok {
		return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	copied := *course
	copied.Sports = stored.Sports
	m.courses[course.ID] = &copied
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) GetCoachCourses(ctx context.Context, coachID int64) ([]*models.Course, error) {
	var courses []*models.Course
	for _, course := range m.courses {
		if course.OwnerID == coachID {
			copied := *course
			courses = append(courses, &copied)
		}
	}
	return courses, nil
}

func (m *mockCourseRepo) Search(ctx context.Context, criteria *dto.CourseSearchCriteria) ([]*models.Course, error) {
	var courses []*models.Course
	for _, course := range m.courses {
		if len(criteria.CoachIDs) > 0 {
			found := false
			for _, id := range criteria.CoachIDs {
				if course.OwnerID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		copied := *course
		courses = append(courses, &copied)
	}
	return courses, nil
}

func (m *mockCourseRepo) DecrementRemainingPlaces(ctx context.Context, id int64) error {
	course, ok := m.courses[id]
	if !ok {
		return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	if course.RemainingPlaces <= 0 {
		return apperrors.BadRequest(apperrors.ErrNoRemainingPlaces, "no remaining places in this course")
	}
	course.RemainingPlaces--
	m.decrements++
	return nil
}

func (m *mockCourseRepo) IncrementRemainingPlaces(ctx context.Context, id int64) error {
	course, ok := m.courses[id]
	if !ok {
		return apperrors.NotFound(apperrors.ErrCourseNotFound, "course not found")
	}
	if course.RemainingPlaces < course.Places {
		course.RemainingPlaces++
	}
	m.increments++
	return nil
}

type mockSportRepo struct {
	sports map[int64]*models.Sport
	nextID int64
}

func newMockSportRepo() *mockSportRepo {
	return &mockSportRepo{sports: make(map[int64]*models.Sport), nextID: 1}
}

func (m *mockSportRepo) add(sport *models.Sport) *models.Sport {
	if sport.ID == 0 {
		sport.ID = m.nextID
		m.nextID++
	} else if sport.ID >= m.nextID {
		m.nextID = sport.ID + 1
	}
	m.sports[sport.ID] = sport
	return sport
}

func (m *mockSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	m.add(sport)
	return nil
}

func (m *mockSportRepo) GetByID(ctx context.Context, id int64) (*models.Sport, error) {
	sport, ok := m.sports[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrSportNotFound, "sport not found")
	}
	copied := *sport
	return &copied, nil
}

func (m *mockSportRepo) GetAll(ctx context.Context) ([]*models.Sport, error) {
	var sports []*models.Sport
	for _, sport := range m.sports {
		copied := *sport
		sports = append(sports, &copied)
	}
	return sports, nil
}

func (m *mockSportRepo) Update(ctx context.Context, sport *models.Sport) error {
	if _, ok := m.sports[sport.ID]; !ok {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "sport not found")
	}
	copied := *sport
	m.sports[sport.ID] = &copied
	return nil
}

func (m *mockSportRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.sports[id]; !ok {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "sport not found")
	}
	delete(m.sports, id)
	return nil
}

type mockCourseSportRepo struct {
	memberships map[int64]*models.CourseSport
	nextID      int64
}

func newMockCourseSportRepo() *mockCourseSportRepo {
	return &mockCourseSportRepo{memberships: make(map[int64]*models.CourseSport), nextID: 1}
}

func (m *mockCourseSportRepo) add(cs *models.CourseSport) *models.CourseSport {
	if cs.ID == 0 {
		cs.ID = m.nextID
		m.nextID++
	} else if cs.ID >= m.nextID {
		m.nextID = cs.ID + 1
	}
	m.memberships[cs.ID] = cs
	return cs
}

func (m *mockCourseSportRepo) Create(ctx context.Context, cs *models.CourseSport) error {
	for _, existing := range m.memberships {
		if existing.CourseID == cs.CourseID && existing.SportID == cs.SportID {
			return apperrors.BadRequest(apperrors.ErrDuplicateCourseSport, "course already has this sport")
		}
	}
	m.add(cs)
	return nil
}

func (m *mockCourseSportRepo) GetByID(ctx context.Context, id int64) (*models.CourseSport, error) {
	cs, ok := m.memberships[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrCourseSportNotFound, "course sport not found")
	}
	copied := *cs
	return &copied, nil
}

func (m *mockCourseSportRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.memberships[id]; !ok {
		return apperrors.NotFound(apperrors.ErrCourseSportNotFound, "course sport not found")
	}
	delete(m.memberships, id)
	return nil
}

func (m *mockCourseSportRepo) CountByCourse(ctx context.Context, courseID int64) (int, error) {
	count := 0
	for _, cs := range m.memberships {
		if cs.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockCourseSportRepo) ReplaceForCourse(ctx context.Context, courseID int64, addSportIDs []int64, removeIDs []int64) error {
	for _, sportID := range addSportIDs {
		m.add(&models.CourseSport{CourseID: courseID, SportID: sportID})
	}
	for _, id := range removeIDs {
		delete(m.memberships, id)
	}
	return nil
}

type mockSubscriptionRepo struct {
	subscriptions map[int64]*models.Subscription
	nextID        int64
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subscriptions: make(map[int64]*models.Subscription), nextID: 1}
}

func (m *mockSubscriptionRepo) add(sub *models.Subscription) *models.Subscription {
	if sub.ID == 0 {
		sub.ID = m.nextID
		m.nextID++
	} else if sub.ID >= m.nextID {
		m.nextID = sub.ID + 1
	}
	m.subscriptions[sub.ID] = sub
	return sub
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	for _, existing := range m.subscriptions {
		if existing.UserID == sub.UserID && existing.CourseID == sub.CourseID {
			return apperrors.BadRequest(apperrors.ErrDuplicateSubscription,
				"user already has a subscription for this course")
		}
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionPending
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	m.add(sub)
	return nil
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	sub, ok := m.subscriptions[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.ErrSubscriptionNotFound, "subscription not found")
	}
	copied := *sub
	return &copied, nil
}

func (m *mockSubscriptionRepo) GetAll(ctx context.Context) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for _, sub := range m.subscriptions {
		copied := *sub
		subs = append(subs, &copied)
	}
	return subs, nil
}

func (m *mockSubscriptionRepo) ListByCourse(ctx context.Context, courseID int64) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for _, sub := range m.subscriptions {
		if sub.CourseID == courseID {
			copied := *sub
			subs = append(subs, &copied)
		}
	}
	return subs, nil
}

func (m *mockSubscriptionRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Subscription, error) {
	var subs []*models.Subscription
	for _, sub := range m.subscriptions {
		if sub.UserID == userID {
			copied := *sub
			subs = append(subs, &copied)
		}
	}
	return subs, nil
}

func (m *mockSubscriptionRepo) UpdateStatus(ctx context.Context, id int64, status models.SubscriptionStatus) error {
	sub, ok := m.subscriptions[id]
	if !ok {
		return apperrors.NotFound(apperrors.ErrSubscriptionNotFound, "subscription not found")
	}
	sub.Status = status
	sub.UpdatedAt = time.Now()
	return nil
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.subscriptions[id]; !ok {
		return apperrors.NotFound(apperrors.ErrSubscriptionNotFound, "subscription not found")
	}
	delete(m.subscriptions, id)
	return nil
}

type mockUserSportRepo struct {
	affinities map[int64]*models.UserSport
	nextID     int64
}

func newMockUserSportRepo() *mockUserSportRepo {
	return &mockUserSportRepo{affinities: make(map[int64]*models.UserSport), nextID: 1}
}

func (m *mockUserSportRepo) Create(ctx context.Context, us *models.UserSport) error {
	for _, existing := range m.affinities {
		if existing.UserID == us.UserID && existing.SportID == us.SportID {
			return apperrors.BadRequest(apperrors.ErrValidationFailed, "user already has this sport")
		}
	}
	if us.ID == 0 {
		us.ID = m.nextID
		m.nextID++
	}
	m.affinities[us.ID] = us
	return nil
}

func (m *mockUserSportRepo) UpdateLevel(ctx context.Context, id int64, level models.Level) error {
	us, ok := m.affinities[id]
	if !ok {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "user sport not found")
	}
	us.Level = &level
	return nil
}

func (m *mockUserSportRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.affinities[id]; !ok {
		return apperrors.NotFound(apperrors.ErrSportNotFound, "user sport not found")
	}
	delete(m.affinities, id)
	return nil
}
