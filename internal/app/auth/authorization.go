// Package auth contains authorization checks shared by the services.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	resourceRepo repositories.IResourceRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(resourceRepo repositories.IResourceRepository) *AuthorizationService {
	return &AuthorizationService{
		resourceRepo: resourceRepo,
	}
}

// CanModifyResource checks whether the user may delete or edit a resource.
// Uploaders can modify their own resources; admins can modify any.
func (s *AuthorizationService) CanModifyResource(ctx context.Context, resourceID, userID int64, role models.RoleType) (bool, error) {
	if role == models.RoleAdmin {
		return true, nil
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, err
		}
		logger.Error().Err(err).Int64("resourceID", resourceID).Msg("Error getting resource for ownership check")
		return false, fmt.Errorf("failed to check resource ownership: %w", err)
	}

	return resource.UploadedBy == userID, nil
}

// ValidateResourceOwnership returns an error unless the user owns the resource
// or is an admin.
func (s *AuthorizationService) ValidateResourceOwnership(ctx context.Context, resourceID, userID int64, role models.RoleType) error {
	canModify, err := s.CanModifyResource(ctx, resourceID, userID, role)
	if err != nil {
		return err
	}
	if !canModify {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
