// Package repositories contains the pgx data access layer.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozan/studyshelf/internal/app/models"
)

// IUserRepository defines user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) (*models.User, error)
}

// IResourceRepository defines resource catalog database operations
type IResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) (*models.Resource, error)
	GetByID(ctx context.Context, id int64) (*ResourceDetails, error)
	List(ctx context.Context, params ListResourcesParams) ([]*ResourceDetails, error)
	Delete(ctx context.Context, id int64) error
	IncrementDownloads(ctx context.Context, id int64) (int64, error)
	SetStatus(ctx context.Context, id int64, status models.ResourceStatus) (*ResourceDetails, error)
	TopDownloads(ctx context.Context, limit int) ([]TopDownloadRow, error)
	CountBySubject(ctx context.Context) ([]SubjectCountRow, error)
}

// ICommentRepository defines comment database operations
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	ListByResource(ctx context.Context, resourceID int64) ([]*CommentDetails, error)
}

// IRatingRepository defines rating database operations
type IRatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error)
}

// IBookmarkRepository defines bookmark database operations
type IBookmarkRepository interface {
	Upsert(ctx context.Context, userID, resourceID int64) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, resourceID int64) error
	ListByUser(ctx context.Context, userID int64) ([]*BookmarkDetails, error)
}

// Repositories bundles all repositories for dependency injection.
type Repositories struct {
	UserRepository     *UserRepository
	ResourceRepository *ResourceRepository
	CommentRepository  *CommentRepository
	RatingRepository   *RatingRepository
	BookmarkRepository *BookmarkRepository
}

// NewRepositories creates the repository container over a shared pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		ResourceRepository: NewResourceRepository(db),
		CommentRepository:  NewCommentRepository(db),
		RatingRepository:   NewRatingRepository(db),
		BookmarkRepository: NewBookmarkRepository(db),
	}
}
