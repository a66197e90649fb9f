package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/services"
	"github.com/ozan/studyshelf/internal/middleware"
)

// AdminController handles moderation and user management operations
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// parseAdminIDParam reads the :id path parameter for admin routes.
func parseAdminIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID")
		errorDetail = errorDetail.WithDetails("ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListPendingResources handles the moderation queue
// @Summary List pending resources
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse} "Pending resources, oldest first"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /admin/pending [get]
func (c *AdminController) ListPendingResources(ctx *gin.Context) {
	resources, err := c.adminService.ListPendingResources(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// ApproveResource handles publishing a pending resource
// @Summary Approve a resource
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource approved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /admin/approve/{id} [post]
func (c *AdminController) ApproveResource(ctx *gin.Context) {
	id, ok := parseAdminIDParam(ctx)
	if !ok {
		return
	}

	resource, err := c.adminService.ApproveResource(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// RejectResource handles rejecting a pending resource
// @Summary Reject a resource
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource rejected"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /admin/reject/{id} [post]
func (c *AdminController) RejectResource(ctx *gin.Context) {
	id, ok := parseAdminIDParam(ctx)
	if !ok {
		return
	}

	resource, err := c.adminService.RejectResource(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// ListUsers handles retrieving all accounts
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Users retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.adminService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// BlockUser handles blocking an account
// @Summary Block a user
// @Description Blocks an account. Admin accounts cannot be blocked.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User blocked"
// @Failure 403 {object} dto.ErrorResponse "Not an admin or target is an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/block/{id} [post]
func (c *AdminController) BlockUser(ctx *gin.Context) {
	c.setBlocked(ctx, true)
}

// UnblockUser handles unblocking an account
// @Summary Unblock a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User unblocked"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/unblock/{id} [post]
func (c *AdminController) UnblockUser(ctx *gin.Context) {
	c.setBlocked(ctx, false)
}

func (c *AdminController) setBlocked(ctx *gin.Context, blocked bool) {
	id, ok := parseAdminIDParam(ctx)
	if !ok {
		return
	}

	user, err := c.adminService.SetUserBlocked(ctx.Request.Context(), id, blocked)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// GetStats handles catalog statistics
// @Summary Get catalog statistics
// @Description Returns the most downloaded approved resources and per-subject counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Statistics retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.adminService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
