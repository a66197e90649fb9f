// Package services contains the business logic layer between controllers and
// repositories.
package services

import (
	"github.com/ozan/studyshelf/internal/app/auth"
	"github.com/ozan/studyshelf/internal/app/repositories"
	jwtauth "github.com/ozan/studyshelf/internal/pkg/auth"
	"github.com/ozan/studyshelf/internal/pkg/filestorage"
)

// Services defined in this package:
// - AuthService: signup, login and profile retrieval
// - ResourceService: catalog listing, uploads, downloads and deletion
// - CommentService: comments on resources
// - RatingService: one rating per user per resource
// - BookmarkService: personal bookmark lists
// - AdminService: moderation queue, user management and catalog stats

// Services bundles all services for dependency injection.
type Services struct {
	AuthService     AuthService
	ResourceService ResourceService
	CommentService  CommentService
	RatingService   RatingService
	BookmarkService BookmarkService
	AdminService    AdminService
}

// NewServices wires the service implementations over the repository container.
func NewServices(
	repos *repositories.Repositories,
	jwtService *jwtauth.JWTService,
	fileStorage *filestorage.LocalStorage,
	maxUploadBytes int64,
) *Services {
	authzService := auth.NewAuthorizationService(repos.ResourceRepository)

	return &Services{
		AuthService:     NewAuthService(repos.UserRepository, jwtService),
		ResourceService: NewResourceService(repos.ResourceRepository, authzService, fileStorage, maxUploadBytes),
		CommentService:  NewCommentService(repos.CommentRepository, repos.ResourceRepository),
		RatingService:   NewRatingService(repos.RatingRepository, repos.ResourceRepository),
		BookmarkService: NewBookmarkService(repos.BookmarkRepository, repos.ResourceRepository),
		AdminService:    NewAdminService(repos.UserRepository, repos.ResourceRepository),
	}
}
