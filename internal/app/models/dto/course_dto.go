package dto

import (
	"time"

	"github.com/aurel/sportcourse/internal/app/models"
)

// CreateCourseRequest is the payload for creating a course. RemainingPlaces
// is optional; when omitted the course starts with all places free.
type CreateCourseRequest struct {
	StartDate       time.Time      `json:"startDate" binding:"required"`
	EndDate         time.Time      `json:"endDate" binding:"required"`
	Places          int            `json:"places" binding:"required,gt=0"`
	RemainingPlaces *int           `json:"remainingPlaces,omitempty"`
	Price           float64        `json:"price"`
	Locations       []string       `json:"locations" binding:"required"`
	Levels          []models.Level `json:"levels" binding:"required"`
	SportIDs        []int64        `json:"sportIds" binding:"required"`
}

// UpdateCourseRequest is the partial-update payload for a course. A non-nil
// SportIDs replaces the course's sport memberships as one unit.
type UpdateCourseRequest struct {
	StartDate       *time.Time     `json:"startDate,omitempty"`
	EndDate         *time.Time     `json:"endDate,omitempty"`
	Places          *int           `json:"places,omitempty"`
	RemainingPlaces *int           `json:"remainingPlaces,omitempty"`
	Price           *float64       `json:"price,omitempty"`
	Locations       []string       `json:"locations,omitempty"`
	Levels          []models.Level `json:"levels,omitempty"`
	SportIDs        []int64        `json:"sportIds,omitempty"`
}

// CourseSearchCriteria narrows course search results. Absent options do not
// filter; present options combine with logical AND across categories, while
// multiple sports or locations are OR'd within their category.
type CourseSearchCriteria struct {
	CoachName          string         `form:"coachName"`
	SportIDs           []int64        `form:"sports"`
	MinDate            *time.Time     `form:"minDate" time_format:"2006-01-02"`
	MaxDate            *time.Time     `form:"maxDate" time_format:"2006-01-02"`
	Locations          []string       `form:"locations"`
	MinPlaces          *int           `form:"minPlaces"`
	MaxPlaces          *int           `form:"maxPlaces"`
	MinRemainingPlaces *int           `form:"minRemainingPlaces"`
	MaxRemainingPlaces *int           `form:"maxRemainingPlaces"`
	Levels             []models.Level `form:"levels"`

	// CoachIDs is resolved from CoachName before the repository query runs;
	// it is not bound from the request.
	CoachIDs []int64 `form:"-"`
}
