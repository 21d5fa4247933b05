package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrUserNotFound         = errors.New("user not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrSportNotFound        = errors.New("sport not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrCourseSportNotFound  = errors.New("course sport not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email format")

	// Conflict errors
	ErrEmailAlreadyUsed      = errors.New("email already used")
	ErrDuplicateSubscription = errors.New("user already has a subscription for this course")
	ErrDuplicateCourseSport  = errors.New("course already has this sport")
)

// Business-rule errors of the subscription lifecycle and the course-sport
// membership guard. They are raised as Coded errors at the point of
// detection; the sentinels exist for errors.Is checks.
var (
	ErrNoRemainingPlaces = errors.New("no remaining places in this course")
	ErrInvalidTransition = errors.New("invalid subscription status transition")
	ErrLastSportRemoval  = errors.New("you cannot remove the only sport remaining in a course")
	ErrEmptySportList    = errors.New("a course must have at least one sport")
)

// Is returns whether target or any error in errList matches err.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
