package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/services"
	"github.com/ozan/studyshelf/internal/middleware"
)

// BookmarkController handles bookmark related operations
type BookmarkController struct {
	bookmarkService services.BookmarkService
}

// NewBookmarkController creates a new BookmarkController
func NewBookmarkController(bookmarkService services.BookmarkService) *BookmarkController {
	return &BookmarkController{
		bookmarkService: bookmarkService,
	}
}

// ListBookmarks handles retrieving the caller's bookmarks
// @Summary List own bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.BookmarkResponse} "Bookmarks retrieved, newest first"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /bookmarks [get]
func (c *BookmarkController) ListBookmarks(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	bookmarks, err := c.bookmarkService.ListBookmarks(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(bookmarks))
}

// AddBookmark handles saving a resource to the caller's bookmarks
// @Summary Add a bookmark
// @Description Saves a resource to the caller's list. Bookmarking twice has no effect.
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BookmarkRequest true "Bookmark details"
// @Success 201 {object} dto.APIResponse{data=dto.BookmarkResponse} "Bookmark saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /bookmarks [post]
func (c *BookmarkController) AddBookmark(ctx *gin.Context) {
	var req dto.BookmarkRequest
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

	bookmark, err := c.bookmarkService.AddBookmark(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(bookmark))
}

// RemoveBookmark handles deleting a bookmark
// @Summary Remove a bookmark
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param resourceId path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Bookmark removed"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Bookmark not found"
// @Router /bookmarks/{resourceId} [delete]
func (c *BookmarkController) RemoveBookmark(ctx *gin.Context) {
	resourceID, err := strconv.ParseInt(ctx.Param("resourceId"), 10, 64)
	if err != nil || resourceID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource ID")
		errorDetail = errorDetail.WithDetails("resourceId must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.bookmarkService.RemoveBookmark(ctx.Request.Context(), userID, resourceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Bookmark removed"}))
}
