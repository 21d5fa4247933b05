package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/repositories"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
	"github.com/aurel/sportcourse/internal/pkg/auth"
	"github.com/aurel/sportcourse/internal/pkg/validation"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetPublicProfile(ctx context.Context, id int64) (*models.PublicProfile, error)
	UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	GrantCoachRole(ctx context.Context, id int64) error
	RevokeCoachRole(ctx context.Context, id int64) error
	SearchCoaches(ctx context.Context, criteria *dto.CoachSearchCriteria) ([]*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo      repositories.UserRepository
	userSportRepo repositories.UserSportRepository
	sportRepo     repositories.SportRepository
	courseRepo    repositories.CourseRepository
	logger        zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	userSportRepo repositories.UserSportRepository,
	sportRepo repositories.SportRepository,
	courseRepo repositories.CourseRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:      userRepo,
		userSportRepo: userSportRepo,
		sportRepo:     sportRepo,
		courseRepo:    courseRepo,
		logger:        logger,
	}
}

// GetAllUsers lists every registered user
func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to retrieve users")
	}
	return users, nil
}

// GetUserByID retrieves a user's full profile. Coaches get their owned
// courses attached.
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.HasRole(models.RoleCoach) {
		courses, err := s.courseRepo.GetCoachCourses(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("userId", id).Msg("Failed to load owned courses")
		} else {
			user.OwnedCourses = courses
		}
	}

	return user, nil
}

// GetPublicProfile retrieves the public projection of a user
func (s *userServiceImpl) GetPublicProfile(ctx context.Context, id int64) (*models.PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateUser applies a partial update to a user profile. A provided sports
// list replaces the user's sport affinities: missing entries are added,
// changed levels are updated and absent entries are removed.
func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if !validation.ValidEmail(*req.Email) {
			return nil, apperrors.BadRequest(apperrors.ErrInvalidEmail, "invalid email format")
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		if !validation.ValidPassword(*req.Password) {
			return nil, apperrors.BadRequest(apperrors.ErrValidationFailed,
				"password must be at least %d characters long", validation.PasswordMinLength)
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewCoded(500, "failed to hash password")
		}
		user.Password = hash
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}

	if req.Sports != nil {
		if err := s.syncUserSports(ctx, user, req.Sports); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, id)
}

// syncUserSports reconciles the stored sport affinities with the desired set
func (s *userServiceImpl) syncUserSports(ctx context.Context, user *models.User, desired []dto.UserSportInput) error {
	current := make(map[int64]*models.UserSport, len(user.Sports))
	for i := range user.Sports {
		current[user.Sports[i].SportID] = &user.Sports[i]
	}

	wanted := make(map[int64]bool, len(desired))
	for _, input := range desired {
		wanted[input.ID] = true

		existing, ok := current[input.ID]
		if ok {
			if input.Level != nil && (existing.Level == nil || *existing.Level != *input.Level) {
				if !models.ValidLevel(*input.Level) {
					return apperrors.BadRequest(apperrors.ErrValidationFailed, "unknown level %q", *input.Level)
				}
				if err := s.userSportRepo.UpdateLevel(ctx, existing.ID, *input.Level); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := s.sportRepo.GetByID(ctx, input.ID); err != nil {
			return apperrors.BadRequest(apperrors.ErrSportNotFound, "sport id %d not found", input.ID)
		}
		if input.Level != nil && !models.ValidLevel(*input.Level) {
			return apperrors.BadRequest(apperrors.ErrValidationFailed, "unknown level %q", *input.Level)
		}
		userSport := &models.UserSport{
			UserID:  user.ID,
			SportID: input.ID,
			Level:   input.Level,
		}
		if err := s.userSportRepo.Create(ctx, userSport); err != nil {
			return err
		}
	}

	for sportID, existing := range current {
		if !wanted[sportID] {
			if err := s.userSportRepo.Delete(ctx, existing.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteUser removes a user account
func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// GrantCoachRole promotes a user to coach
func (s *userServiceImpl) GrantCoachRole(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.HasRole(models.RoleCoach) {
		return apperrors.BadRequest(apperrors.ErrValidationFailed, "user is already a coach")
	}

	user.Roles = append(user.Roles, models.RoleCoach)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", id).Msg("Coach role granted")
	return nil
}

// RevokeCoachRole demotes a coach back to a regular user
func (s *userServiceImpl) RevokeCoachRole(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.HasRole(models.RoleCoach) {
		return apperrors.BadRequest(apperrors.ErrValidationFailed, "user is already not a coach")
	}

	roles := make([]models.Role, 0, len(user.Roles))
	for _, role := range user.Roles {
		if role != models.RoleCoach {
			roles = append(roles, role)
		}
	}
	user.Roles = roles
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", id).Msg("Coach role revoked")
	return nil
}

// SearchCoaches finds coaches by name and attaches their owned courses
func (s *userServiceImpl) SearchCoaches(ctx context.Context, criteria *dto.CoachSearchCriteria) ([]*models.User, error) {
	coaches, err := s.userRepo.SearchCoaches(ctx, criteria.Name)
	if err != nil {
		return nil, apperrors.WrapRepo(err, "failed to search coaches")
	}

	for _, coach := range coaches {
		courses, err := s.courseRepo.GetCoachCourses(ctx, coach.ID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("coachId", coach.ID).Msg("Failed to load owned courses")
			continue
		}
		coach.OwnedCourses = courses
	}
	return coaches, nil
}
