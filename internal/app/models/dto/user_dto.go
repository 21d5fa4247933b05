package dto

import "github.com/aurel/sportcourse/internal/app/models"

// UserSportInput declares a sport affinity in a user update. The listed set
// replaces the user's current affinities.
type UserSportInput struct {
	ID    int64         `json:"id" binding:"required"`
	Level *models.Level `json:"level,omitempty"`
}

// UpdateUserRequest is the partial-update payload for a user profile.
type UpdateUserRequest struct {
	Email          *string          `json:"email,omitempty"`
	Password       *string          `json:"password,omitempty"`
	FirstName      *string          `json:"firstName,omitempty"`
	LastName       *string          `json:"lastName,omitempty"`
	ProfilePicture *string          `json:"profilePicture,omitempty"`
	Sports         []UserSportInput `json:"sports,omitempty"`
}

// CoachSearchCriteria filters the coach directory.
type CoachSearchCriteria struct {
	Name string `form:"name"`
}
