package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// CommentDetails is a comment joined with its author.
type CommentDetails struct {
	ID         int64           `db:"id" json:"id"`
	ResourceID int64           `db:"resource_id" json:"resourceId"`
	UserID     int64           `db:"user_id" json:"userId"`
	UserName   string          `db:"user_name" json:"userName"`
	UserRole   models.RoleType `db:"user_role" json:"userRole"`
	Comment    string          `db:"comment" json:"comment"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// CommentRepository handles database operations for Comment.
type CommentRepository struct {
	DB *pgxpool.Pool
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{DB: db}
}

// Create inserts a new comment and fills in the generated columns.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	sql, args, err := squirrel.Insert("comments").
		Columns("resource_id", "user_id", "comment").
		Values(comment.ResourceID, comment.UserID, comment.Comment).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create comment SQL")
		return nil, err
	}

	err = r.DB.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create comment query")
		return nil, err
	}

	return comment, nil
}

// ListByResource retrieves a resource's comments, newest first.
func (r *CommentRepository) ListByResource(ctx context.Context, resourceID int64) ([]*CommentDetails, error) {
	sql, args, err := squirrel.Select(
		"c.id", "c.resource_id", "c.user_id",
		"u.name AS user_name", "u.role AS user_role",
		"c.comment", "c.created_at",
	).From("comments c").
		Join("users u ON c.user_id = u.id").
		Where(squirrel.Eq{"c.resource_id": resourceID}).
		OrderBy("c.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("resourceId", resourceID).Msg("Error executing list comments query")
		return nil, err
	}
	defer rows.Close()

	var comments []*CommentDetails
	for rows.Next() {
		var c CommentDetails
		err := rows.Scan(&c.ID, &c.ResourceID, &c.UserID, &c.UserName, &c.UserRole, &c.Comment, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
