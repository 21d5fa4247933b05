package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/app/auth"
	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/services"
	"github.com/aurel/sportcourse/internal/middleware"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// SubscriptionController handles subscription lifecycle operations
type SubscriptionController struct {
	subscriptionService services.SubscriptionService
	authzService        *auth.AuthorizationService
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(
	subscriptionService services.SubscriptionService,
	authzService *auth.AuthorizationService,
) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
		authzService:        authzService,
	}
}

// GetAllSubscriptions lists every subscription
// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Subscription
// @Router /subscriptions [get]
func (c *SubscriptionController) GetAllSubscriptions(ctx *gin.Context) {
	subscriptions, err := c.subscriptionService.GetAllSubscriptions(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subscriptions)
}

// CreateSubscription creates a subscription on behalf of a user
// @Summary Create a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} models.Subscription
// @Router /subscriptions [post]
func (c *SubscriptionController) CreateSubscription(ctx *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid subscription data")
		return
	}

	subscription, err := c.subscriptionService.CreateSubscription(ctx, req.UserID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, subscription)
}

// GetSubscriptionByID retrieves a subscription. Only an admin, the course
// owner or the subscriber may see it.
// @Summary Get a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id} [get]
func (c *SubscriptionController) GetSubscriptionByID(ctx *gin.Context) {
	id, userID, ok := c.subscriptionRequest(ctx)
	if !ok {
		return
	}

	subscription, err := c.subscriptionService.GetSubscriptionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !c.isAdminOrCourseOwner(ctx, userID, subscription) && subscription.UserID != userID {
		middleware.HandleAPIError(ctx,
			apperrors.Forbidden(apperrors.ErrPermissionDenied, "the user is not the owner of this subscription"))
		return
	}

	ctx.JSON(http.StatusOK, subscription)
}

// UpdateSubscription sets a subscription status directly (admin path)
// @Summary Update a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Param request body dto.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id} [put]
func (c *SubscriptionController) UpdateSubscription(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid subscription data")
		return
	}

	subscription, err := c.subscriptionService.UpdateSubscription(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subscription)
}

// DeleteSubscription removes a subscription
// @Summary Delete a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} map[string]string
// @Router /subscriptions/{id} [delete]
func (c *SubscriptionController) DeleteSubscription(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return
	}

	if err := c.subscriptionService.DeleteSubscription(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}

// AcceptSubscription accepts a pending subscription. Only an admin or the
// course owner may accept.
// @Summary Accept a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id}/accept [post]
func (c *SubscriptionController) AcceptSubscription(ctx *gin.Context) {
	id, userID, ok := c.subscriptionRequest(ctx)
	if !ok {
		return
	}

	subscription, err := c.subscriptionService.GetSubscriptionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !c.isAdminOrCourseOwner(ctx, userID, subscription) {
		middleware.HandleAPIError(ctx,
			apperrors.Forbidden(apperrors.ErrPermissionDenied, "the user is not the owner of the course"))
		return
	}

	updated, err := c.subscriptionService.AcceptSubscription(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// RejectSubscription rejects a subscription. Only an admin or the course
// owner may reject.
// @Summary Reject a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id}/reject [post]
func (c *SubscriptionController) RejectSubscription(ctx *gin.Context) {
	id, userID, ok := c.subscriptionRequest(ctx)
	if !ok {
		return
	}

	subscription, err := c.subscriptionService.GetSubscriptionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !c.isAdminOrCourseOwner(ctx, userID, subscription) {
		middleware.HandleAPIError(ctx,
			apperrors.Forbidden(apperrors.ErrPermissionDenied, "the user is not the owner of the course"))
		return
	}

	updated, err := c.subscriptionService.RejectSubscription(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// CancelSubscription cancels a subscription. Only an admin or the subscriber
// may cancel.
// @Summary Cancel a subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscription ID"
// @Success 200 {object} models.Subscription
// @Router /subscriptions/{id}/cancel [post]
func (c *SubscriptionController) CancelSubscription(ctx *gin.Context) {
	id, userID, ok := c.subscriptionRequest(ctx)
	if !ok {
		return
	}

	subscription, err := c.subscriptionService.GetSubscriptionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !middleware.HasRole(ctx, models.RoleAdmin) && subscription.UserID != userID {
		middleware.HandleAPIError(ctx,
			apperrors.Forbidden(apperrors.ErrPermissionDenied, "the user is not the owner of this subscription"))
		return
	}

	updated, err := c.subscriptionService.CancelSubscription(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// subscriptionRequest parses the id parameter and resolves the caller
func (c *SubscriptionController) subscriptionRequest(ctx *gin.Context) (subscriptionID, userID int64, ok bool) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subscription ID"})
		return 0, 0, false
	}
	userID, found := middleware.GetUserID(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, 0, false
	}
	return id, userID, true
}

func (c *SubscriptionController) isAdminOrCourseOwner(ctx *gin.Context, userID int64, subscription *models.Subscription) bool {
	if middleware.HasRole(ctx, models.RoleAdmin) {
		return true
	}
	allowed, err := c.authzService.IsCourseOwner(ctx, userID, subscription.CourseID)
	if err != nil {
		return false
	}
	return allowed
}

// parseIDParam parses a numeric path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}
