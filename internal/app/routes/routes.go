// Package routes maps the HTTP surface onto the controllers.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ozan/studyshelf/internal/app/controllers"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	resourceController *controllers.ResourceController,
	commentController *controllers.CommentController,
	ratingController *controllers.RatingController,
	bookmarkController *controllers.BookmarkController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Own profile requires a valid token
	api.GET("/auth/me", authMiddleware.JWTAuth(), authController.Me)

	// --- Resource routes ---
	resources := api.Group("/resources")
	{
		// Browsing and downloading are public; the listing still reads the
		// caller's role when a token is present so admins can filter by status
		resources.GET("", authMiddleware.OptionalJWTAuth(), resourceController.ListResources)
		resources.GET("/:id", resourceController.GetResourceByID)
		resources.POST("/:id/download", resourceController.Download)

		// Uploading and deleting require authentication
		resourcesProtected := resources.Group("")
		resourcesProtected.Use(authMiddleware.JWTAuth())
		{
			resourcesProtected.POST("", resourceController.CreateResource)
			resourcesProtected.DELETE("/:id", resourceController.DeleteResource)
		}
	}

	// --- Comment routes ---
	comments := api.Group("/comments")
	{
		comments.GET("", commentController.ListComments)
		comments.POST("", authMiddleware.JWTAuth(), commentController.CreateComment)
	}

	// --- Rating routes ---
	api.POST("/ratings", authMiddleware.JWTAuth(), ratingController.RateResource)

	// --- Bookmark routes (all authenticated) ---
	bookmarks := api.Group("/bookmarks")
	bookmarks.Use(authMiddleware.JWTAuth())
	{
		bookmarks.GET("", bookmarkController.ListBookmarks)
		bookmarks.POST("", bookmarkController.AddBookmark)
		bookmarks.DELETE("/:resourceId", bookmarkController.RemoveBookmark)
	}

	// --- Admin routes ---
	admin := api.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/pending", adminController.ListPendingResources)
		admin.POST("/approve/:id", adminController.ApproveResource)
		admin.POST("/reject/:id", adminController.RejectResource)
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/block/:id", adminController.BlockUser)
		admin.POST("/unblock/:id", adminController.UnblockUser)
		admin.GET("/stats", adminController.GetStats)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
