package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/app/models"
	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/services"
	"github.com/aurel/sportcourse/internal/middleware"
	"github.com/aurel/sportcourse/internal/pkg/apperrors"
)

// UserController handles user profile operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetAllUsers lists every registered user
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID retrieves a user. The user themselves and admins get the full
// profile, everyone else the public projection.
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	callerID, found := middleware.GetUserID(ctx)
	if found && (callerID == id || middleware.HasRole(ctx, models.RoleAdmin)) {
		user, err := c.userService.GetUserByID(ctx, id)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, user)
		return
	}

	profile, err := c.userService.GetPublicProfile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

// UpdateUser applies a partial update. Users may update themselves; admins
// may update anyone.
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := c.selfOrAdminRequest(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid user data")
		return
	}

	user, err := c.userService.UpdateUser(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account. Users may delete themselves; admins may
// delete anyone.
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := c.selfOrAdminRequest(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GrantCoachRole promotes a user to coach
// @Summary Grant the coach role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Router /users/{id}/grant-coach [post]
func (c *UserController) GrantCoachRole(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.userService.GrantCoachRole(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Coach role granted successfully"})
}

// RevokeCoachRole demotes a coach back to a regular user
// @Summary Revoke the coach role
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Router /users/{id}/revoke-coach [post]
func (c *UserController) RevokeCoachRole(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.userService.RevokeCoachRole(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Coach role revoked successfully"})
}

// SearchCoaches finds coaches by name
// @Summary Search coaches
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name substring"
// @Success 200 {array} models.User
// @Router /coaches/search [get]
func (c *UserController) SearchCoaches(ctx *gin.Context) {
	var criteria dto.CoachSearchCriteria
	if err := ctx.ShouldBindQuery(&criteria); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid search criteria")
		return
	}

	coaches, err := c.userService.SearchCoaches(ctx, &criteria)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, coaches)
}

// selfOrAdminRequest parses the id parameter and allows the user themselves
// or an admin through.
func (c *UserController) selfOrAdminRequest(ctx *gin.Context) (int64, bool) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}

	callerID, found := middleware.GetUserID(ctx)
	if !found {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, false
	}
	if callerID != id && !middleware.HasRole(ctx, models.RoleAdmin) {
		middleware.HandleAPIError(ctx,
			apperrors.Forbidden(apperrors.ErrPermissionDenied, "the user is not allowed to modify this account"))
		return 0, false
	}
	return id, true
}
