package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/services"
	"github.com/ozan/studyshelf/internal/middleware"
)

// RatingController handles rating related operations
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

// RateResource handles submitting or replacing a rating
// @Summary Rate a resource
// @Description Submits a 1-5 rating. Rating the same resource again replaces the previous value.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RateRequest true "Rating details"
// @Success 201 {object} dto.APIResponse{data=dto.RatingResponse} "Rating saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /ratings [post]
func (c *RatingController) RateResource(ctx *gin.Context) {
	var req dto.RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	rating, err := c.ratingService.RateResource(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(rating))
}
