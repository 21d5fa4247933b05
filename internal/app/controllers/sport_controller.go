package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aurel/sportcourse/internal/app/models/dto"
	"github.com/aurel/sportcourse/internal/app/services"
	"github.com/aurel/sportcourse/internal/middleware"
)

// SportController handles sport catalog operations
type SportController struct {
	sportService services.SportService
}

// NewSportController creates a new SportController
func NewSportController(sportService services.SportService) *SportController {
	return &SportController{sportService: sportService}
}

// GetAllSports lists the sport catalog
// @Summary List sports
// @Tags sports
// @Produce json
// @Success 200 {array} models.Sport
// @Router /sports [get]
func (c *SportController) GetAllSports(ctx *gin.Context) {
	sports, err := c.sportService.GetAllSports(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sports)
}

// GetSportByID retrieves a single sport
// @Summary Get a sport
// @Tags sports
// @Produce json
// @Param id path int true "Sport ID"
// @Success 200 {object} models.Sport
// @Router /sports/{id} [get]
func (c *SportController) GetSportByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport ID"})
		return
	}

	sport, err := c.sportService.GetSportByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sport)
}

// CreateSport adds a sport to the catalog
// @Summary Create a sport
// @Tags sports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSportRequest true "Sport"
// @Success 201 {object} models.Sport
// @Router /sports [post]
func (c *SportController) CreateSport(ctx *gin.Context) {
	var req dto.CreateSportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid sport data")
		return
	}

	sport, err := c.sportService.CreateSport(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, sport)
}

// UpdateSport applies a partial update to a sport
// @Summary Update a sport
// @Tags sports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sport ID"
// @Param request body dto.UpdateSportRequest true "Fields to update"
// @Success 200 {object} models.Sport
// @Router /sports/{id} [put]
func (c *SportController) UpdateSport(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport ID"})
		return
	}

	var req dto.UpdateSportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid sport data")
		return
	}

	sport, err := c.sportService.UpdateSport(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sport)
}

// DeleteSport removes a sport from the catalog
// @Summary Delete a sport
// @Tags sports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sport ID"
// @Success 200 {object} map[string]string
// @Router /sports/{id} [delete]
func (c *SportController) DeleteSport(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sport ID"})
		return
	}

	if err := c.sportService.DeleteSport(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Sport deleted successfully"})
}
