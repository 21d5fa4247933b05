package models

import "time"

// Subscription is a student's request for a seat in a course. A user holds at
// most one subscription per course. Status is mutated only by the
// subscription service; capacity is reserved at acceptance, not at request
// time.
type Subscription struct {
	ID        int64              `json:"id" db:"id"`
	UserID    int64              `json:"userId" db:"user_id"`
	CourseID  int64              `json:"courseId" db:"course_id"`
	Status    SubscriptionStatus `json:"status" db:"status"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User   *PublicProfile `json:"user,omitempty"`
	Course *Course        `json:"course,omitempty"`
}
