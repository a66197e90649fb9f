package services

import (
	"context"
	"testing"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateResource(t *testing.T) {
	resources := newFakeResourceRepo()
	resources.add(&repositories.ResourceDetails{ID: 1, Title: "Doc", Subject: "math", Status: models.StatusApproved})
	service := NewRatingService(newFakeRatingRepo(), resources)

	resp, err := service.RateResource(context.Background(), 5, &dto.RateRequest{ResourceID: 1, Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, int64(5), resp.UserID)
}

func TestRateResourceReplacesPrevious(t *testing.T) {
	resources := newFakeResourceRepo()
	resources.add(&repositories.ResourceDetails{ID: 1, Title: "Doc", Subject: "math", Status: models.StatusApproved})
	service := NewRatingService(newFakeRatingRepo(), resources)

	first, err := service.RateResource(context.Background(), 5, &dto.RateRequest{ResourceID: 1, Rating: 2})
	require.NoError(t, err)

	second, err := service.RateResource(context.Background(), 5, &dto.RateRequest{ResourceID: 1, Rating: 5})
	require.NoError(t, err)

	// Same row, new value
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
}

func TestRateResourceMissingResource(t *testing.T) {
	service := NewRatingService(newFakeRatingRepo(), newFakeResourceRepo())

	_, err := service.RateResource(context.Background(), 5, &dto.RateRequest{ResourceID: 404, Rating: 3})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
