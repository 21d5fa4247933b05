package models

// Role represents a user role. A user may hold several at once.
type Role string

const (
	RoleStudent Role = "student"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// Level is the skill tier attached to courses and user sport affinities.
type Level string

const (
	LevelBeginner Level = "beginner"
	LevelAdvanced Level = "advanced"
	LevelVeteran  Level = "veteran"
	LevelExpert   Level = "expert"
)

// ValidLevel reports whether l is one of the known levels.
func ValidLevel(l Level) bool {
	switch l {
	case LevelBeginner, LevelAdvanced, LevelVeteran, LevelExpert:
		return true
	}
	return false
}

// SubscriptionStatus represents the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionAccepted SubscriptionStatus = "accepted"
	SubscriptionRejected SubscriptionStatus = "rejected"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// ValidSubscriptionStatus reports whether s is one of the known statuses.
func ValidSubscriptionStatus(s SubscriptionStatus) bool {
	switch s {
	case SubscriptionPending, SubscriptionAccepted, SubscriptionRejected, SubscriptionCanceled:
		return true
	}
	return false
}
