package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/services"
	"github.com/ozan/studyshelf/internal/middleware"
)

// ResourceController handles catalog related operations
type ResourceController struct {
	resourceService services.ResourceService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
	}
}

// parseIDParam reads the :id path parameter.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resource ID")
		errorDetail = errorDetail.WithDetails("Resource ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListResources handles catalog browsing with optional filters
// @Summary List resources
// @Description Lists approved resources with optional title search, subject, tag and uploader filters
// @Tags resources
// @Produce json
// @Param q query string false "Title search term"
// @Param subject query string false "Filter by subject"
// @Param tags query string false "Comma-separated tags, any match"
// @Param uploader query int false "Filter by uploader ID"
// @Param sortBy query string false "Sort field (createdAt, title, subject, downloadsCount, rating)"
// @Param order query string false "Sort order (asc, desc)"
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse} "Resources retrieved"
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	var filter dto.ResourceFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	resources, err := c.resourceService.ListResources(ctx.Request.Context(), &filter, middleware.CurrentUserRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// GetResourceByID handles retrieving a single resource
// @Summary Get resource by ID
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource retrieved"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResourceByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	resource, err := c.resourceService.GetResourceByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// CreateResource handles a new upload
// @Summary Upload a resource
// @Description Uploads a document. Admin uploads are published immediately; others await moderation.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param subject formData string true "Subject"
// @Param tags formData string false "Comma-separated tags"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource created"
// @Failure 400 {object} dto.ErrorResponse "Invalid form data or missing file"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	var req dto.CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	// Absent file surfaces as ErrFileRequired from the service
	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	resource, err := c.resourceService.CreateResource(ctx.Request.Context(), userID, middleware.CurrentUserRole(ctx), &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// DeleteResource handles removing a resource
// @Summary Delete a resource
// @Description Deletes a resource and its stored file. Only the uploader or an admin may delete.
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Resource deleted"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 403 {object} dto.ErrorResponse "Not the uploader"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.resourceService.DeleteResource(ctx.Request.Context(), id, userID, middleware.CurrentUserRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Resource deleted"}))
}

// Download handles download counting
// @Summary Register a download
// @Description Atomically increments the download counter and returns the new value
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.DownloadResponse} "Counter incremented"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id}/download [post]
func (c *ResourceController) Download(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	resp, err := c.resourceService.RegisterDownload(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
