package services

import (
	"context"
	"fmt"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
)

// RatingService defines the interface for rating operations
type RatingService interface {
	RateResource(ctx context.Context, userID int64, req *dto.RateRequest) (*dto.RatingResponse, error)
}

// ratingServiceImpl implements RatingService
type ratingServiceImpl struct {
	ratingRepo   repositories.IRatingRepository
	resourceRepo repositories.IResourceRepository
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo repositories.IRatingRepository, resourceRepo repositories.IResourceRepository) RatingService {
	return &ratingServiceImpl{
		ratingRepo:   ratingRepo,
		resourceRepo: resourceRepo,
	}
}

// RateResource submits or replaces the caller's rating for a resource. A user
// holds at most one rating per resource; resubmitting overwrites the value.
func (s *ratingServiceImpl) RateResource(ctx context.Context, userID int64, req *dto.RateRequest) (*dto.RatingResponse, error) {
	if _, err := s.resourceRepo.GetByID(ctx, req.ResourceID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ResourceID: req.ResourceID,
		UserID:     userID,
		Rating:     req.Rating,
	}

	if _, err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("error saving rating: %w", err)
	}

	return &dto.RatingResponse{
		ID:         rating.ID,
		ResourceID: rating.ResourceID,
		UserID:     rating.UserID,
		Rating:     rating.Rating,
		CreatedAt:  rating.CreatedAt,
		UpdatedAt:  rating.UpdatedAt,
	}, nil
}
