package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         UserRepository
	UserSportRepository    UserSportRepository
	SportRepository        SportRepository
	CourseRepository       CourseRepository
	CourseSportRepository  CourseSportRepository
	SubscriptionRepository SubscriptionRepository
	TokenRepository        TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		UserSportRepository:    NewUserSportRepository(db),
		SportRepository:        NewSportRepository(db),
		CourseRepository:       NewCourseRepository(db),
		CourseSportRepository:  NewCourseSportRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
