package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// RatingRepository handles database operations for Rating.
type RatingRepository struct {
	DB *pgxpool.Pool
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert inserts a rating or overwrites the caller's previous one for the
// same resource. The unique constraint on (resource_id, user_id) makes the
// write atomic under concurrent submissions.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO ratings (resource_id, user_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT ratings_resource_user_unique
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		rating.ResourceID, rating.UserID, rating.Rating).
		Scan(&rating.ID, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).
			Int64("resourceId", rating.ResourceID).
			Int64("userId", rating.UserID).
			Msg("Error upserting rating")
		return nil, err
	}

	return rating, nil
}
