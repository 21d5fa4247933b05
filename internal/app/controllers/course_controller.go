package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/app/auth"
	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/services"
	"github.com/aurel/sportcourse/internal/middleware"
)

// CourseController handles course and course sport membership operations
type CourseController struct {
	courseService       services.CourseService
	courseSportService  services.CourseSportService
	subscriptionService services.SubscriptionService
	authzService        *auth.AuthorizationService
}

// NewCourseController creates a new CourseController
func NewCourseController(
	courseService services.CourseService,
	courseSportService services.CourseSportService,
	subscriptionService services.SubscriptionService,
	authzService *auth.AuthorizationService,
) *CourseController {
	return &CourseController{
		courseService:       courseService,
		courseSportService:  courseSportService,
		subscriptionService: subscriptionService,
		authzService:        authzService,
	}
}

// CreateCourse creates a course owned by the calling coach
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	userID, found := middleware.GetUserID(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid course data")
		return
	}

	course, err := c.courseService.CreateCourse(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// GetCourseByID retrieves a course. The owner and admins also see the
// course's subscriptions.
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	includeSubscriptions := false
	if userID, found := middleware.GetUserID(ctx); found {
		if allowed, err := c.authzService.IsAdminOrCourseOwner(ctx, userID, id); err == nil && allowed {
			includeSubscriptions = true
		}
	}

	course, err := c.courseService.GetCourseByID(ctx, id, includeSubscriptions)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// SearchCourses filters the course directory
// @Summary Search courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param coachName query string false "Coach name substring"
// @Param sports query []int false "Sport IDs"
// @Param minDate query string false "Earliest start date"
// @Param maxDate query string false "Latest end date"
// @Param locations query []string false "Location substrings"
// @Param levels query []string false "Levels"
// @Success 200 {array} models.Course
// @Router /courses/search [get]
func (c *CourseController) SearchCourses(ctx *gin.Context) {
	var criteria dto.CourseSearchCriteria
	if err := ctx.ShouldBindQuery(&criteria); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid search criteria")
		return
	}

	courses, err := c.courseService.SearchCourses(ctx, &criteria)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// UpdateCourse applies a partial update. Only an admin or the owner may
// update the course.
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} models.Course
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, _, ok := c.ownedCourseRequest(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid course data")
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course. Only an admin or the owner may delete it.
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, _, ok := c.ownedCourseRequest(ctx)
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// AddSportToCourse attaches a sport to a course
// @Summary Add a sport to a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param sportId path int true "Sport ID"
// @Success 201 {object} models.CourseSport
// @Router /courses/{id}/sports/{sportId} [post]
func (c *CourseController) AddSportToCourse(ctx *gin.Context) {
	id, _, ok := c.ownedCourseRequest(ctx)
	if !ok {
		return
	}

	sportID, err := parseIDParam(ctx, "sportId")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport ID"})
		return
	}

	courseSport, err := c.courseSportService.AddSportToCourse(ctx, id, sportID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, courseSport)
}

// RemoveSportFromCourse detaches a sport from its course
// @Summary Remove a sport from a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseSportId path int true "Course sport ID"
// @Success 200 {object} map[string]string
// @Router /courses/sports/{courseSportId} [delete]
func (c *CourseController) RemoveSportFromCourse(ctx *gin.Context) {
	courseSportID, err := parseIDParam(ctx, "courseSportId")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course sport ID"})
		return
	}

	userID, found := middleware.GetUserID(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if !middleware.HasRole(ctx, models.RoleAdmin) {
		if err := c.authzService.CheckCourseSportOwnership(ctx, userID, courseSportID); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	if err := c.courseSportService.RemoveSportFromCourse(ctx, courseSportID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Sport removed from course successfully"})
}

// Subscribe creates a pending subscription for the calling user
// @Summary Subscribe to a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 201 {object} models.Subscription
// @Router /courses/{id}/subscribe [post]
func (c *CourseController) Subscribe(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	userID, found := middleware.GetUserID(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	subscription, err := c.subscriptionService.CreateSubscription(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, subscription)
}

// ownedCourseRequest parses the course id and enforces the ownership rule
func (c *CourseController) ownedCourseRequest(ctx *gin.Context) (courseID, userID int64, ok bool) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return 0, 0, false
	}

	userID, found := middleware.GetUserID(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, 0, false
	}

	if err := c.authzService.CheckCourseOwnership(ctx, userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, 0, false
	}
	return id, userID, true
}
