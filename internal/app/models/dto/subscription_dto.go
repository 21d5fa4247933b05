package dto

import "github.com/aurel/sportcourse/internal/app/models"

// CreateSubscriptionRequest is the payload for creating a subscription on a
// user's behalf (administrative path; students use the subscribe endpoint).
type CreateSubscriptionRequest struct {
	UserID   int64 `json:"userId" binding:"required"`
	CourseID int64 `json:"courseId" binding:"required"`
}

// UpdateSubscriptionRequest is the administrative partial-update payload. It
// bypasses the lifecycle transition guards; normal flows go through
// accept/reject/cancel.
type UpdateSubscriptionRequest struct {
	Status *models.SubscriptionStatus `json:"status,omitempty"`
}
