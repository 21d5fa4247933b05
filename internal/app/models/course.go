package models

import "time"

// Course represents a scheduled, capacity-limited session owned by a coach.
// Locations and levels are stored as JSONB lists and exposed as native slices.
// remaining_places always satisfies 0 <= remaining_places <= places; the
// counter is written only by subscription accept/cancel transitions and by
// administrative course updates.
type Course struct {
	ID              int64     `json:"id" db:"id"`
	StartDate       time.Time `json:"startDate" db:"start_date"`
	EndDate         time.Time `json:"endDate" db:"end_date"`
	Places          int       `json:"places" db:"places"`
	RemainingPlaces int       `json:"remainingPlaces" db:"remaining_places"`
	Price           float64   `json:"price" db:"price"`
	Locations       []string  `json:"locations" db:"locations"`
	Levels          []Level   `json:"levels" db:"levels"`
	OwnerID         int64     `json:"ownerId,omitempty" db:"owner_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Sports        []CourseSport  `json:"sports,omitempty"`
	Owner         *PublicProfile `json:"owner,omitempty"`
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
}

// CourseSport is the membership row linking a course to one of its sports.
// A course keeps at least one membership at all times.
type CourseSport struct {
	ID       int64 `json:"id" db:"id"`
	CourseID int64 `json:"courseId" db:"course_id"`
	SportID  int64 `json:"sportId" db:"sport_id"`

	Sport *Sport `json:"sport,omitempty"`
}
