package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// BookmarkDetails is a bookmark joined with its resource's catalog fields.
type BookmarkDetails struct {
	ID             int64                 `db:"id" json:"id"`
	ResourceID     int64                 `db:"resource_id" json:"resourceId"`
	Title          string                `db:"title" json:"title"`
	Subject        string                `db:"subject" json:"subject"`
	Status         models.ResourceStatus `db:"status" json:"status"`
	DownloadsCount int64                 `db:"downloads_count" json:"downloadsCount"`
	CreatedAt      time.Time             `db:"created_at" json:"createdAt"`
}

// BookmarkRepository handles database operations for Bookmark.
type BookmarkRepository struct {
	DB *pgxpool.Pool
}

// NewBookmarkRepository creates a new instance of BookmarkRepository.
func NewBookmarkRepository(db *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{DB: db}
}

// Upsert adds a bookmark; repeating the same pair keeps the original row.
func (r *BookmarkRepository) Upsert(ctx context.Context, userID, resourceID int64) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{UserID: userID, ResourceID: resourceID}
	// DO UPDATE with an unchanged column so RETURNING yields the existing row
	err := r.DB.QueryRow(ctx, `
		INSERT INTO bookmarks (user_id, resource_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT bookmarks_user_resource_unique
		DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, created_at`,
		userID, resourceID).
		Scan(&bookmark.ID, &bookmark.CreatedAt)
	if err != nil {
		logger.Error().Err(err).
			Int64("userId", userID).
			Int64("resourceId", resourceID).
			Msg("Error upserting bookmark")
		return nil, err
	}

	return bookmark, nil
}

// Delete removes a bookmark owned by the user.
func (r *BookmarkRepository) Delete(ctx context.Context, userID, resourceID int64) error {
	sql, args, err := squirrel.Delete("bookmarks").
		Where(squirrel.Eq{"user_id": userID, "resource_id": resourceID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceId", resourceID).Msg("Error deleting bookmark")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBookmarkNotFound
	}
	return nil
}

// ListByUser retrieves the user's bookmarks with resource details, newest first.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]*BookmarkDetails, error) {
	sql, args, err := squirrel.Select(
		"b.id", "b.resource_id", "r.title", "r.subject", "r.status",
		"r.downloads_count", "b.created_at",
	).From("bookmarks b").
		Join("resources r ON b.resource_id = r.id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userId", userID).Msg("Error executing list bookmarks query")
		return nil, err
	}
	defer rows.Close()

	var bookmarks []*BookmarkDetails
	for rows.Next() {
		var b BookmarkDetails
		err := rows.Scan(&b.ID, &b.ResourceID, &b.Title, &b.Subject, &b.Status, &b.DownloadsCount, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &b)
	}
	return bookmarks, rows.Err()
}
