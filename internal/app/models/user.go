package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// Roles are stored as a JSONB list and exposed as a native slice.
type User struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	Email          string    `json:"email" db:"email" example:"user@example.com"`
	Password       string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName      string    `json:"firstName" db:"first_name" example:"John"`
	LastName       string    `json:"lastName" db:"last_name" example:"Doe"`
	ProfilePicture *string   `json:"profilePicture,omitempty" db:"profile_picture"`
	Roles          []Role    `json:"roles" db:"roles"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Sports       []UserSport `json:"sports,omitempty"`
	OwnedCourses []*Course   `json:"ownedCourses,omitempty"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PublicProfile is the projection of a user exposed to other users.
type PublicProfile struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// Public returns the public projection of the user.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserSport links a user to a sport with a per-sport skill level.
type UserSport struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"userId" db:"user_id"`
	SportID int64  `json:"sportId" db:"sport_id"`
	Level   *Level `json:"level,omitempty" db:"level"`

	Sport *Sport `json:"sport,omitempty"`
}
