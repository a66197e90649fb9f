package services

import (
	"context"
	"fmt"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// topDownloadsLimit caps the top-downloads stat.
const topDownloadsLimit = 10

// AdminService defines the interface for moderation and user management
type AdminService interface {
	ListPendingResources(ctx context.Context) ([]dto.ResourceResponse, error)
	ApproveResource(ctx context.Context, id int64) (*dto.ResourceResponse, error)
	RejectResource(ctx context.Context, id int64) (*dto.ResourceResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	SetUserBlocked(ctx context.Context, id int64, blocked bool) (*dto.UserResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	userRepo     repositories.IUserRepository
	resourceRepo repositories.IResourceRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repositories.IUserRepository, resourceRepo repositories.IResourceRepository) AdminService {
	return &adminServiceImpl{
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
	}
}

// ListPendingResources retrieves the moderation queue, oldest first.
func (s *adminServiceImpl) ListPendingResources(ctx context.Context) ([]dto.ResourceResponse, error) {
	items, err := s.resourceRepo.List(ctx, repositories.ListResourcesParams{
		Status: models.StatusPending,
		SortBy: "createdAt",
		Order:  "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("error listing pending resources: %w", err)
	}

	responses := make([]dto.ResourceResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toResourceResponse(item))
	}
	return responses, nil
}

// ApproveResource publishes a resource to the catalog.
func (s *adminServiceImpl) ApproveResource(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	return s.setStatus(ctx, id, models.StatusApproved)
}

// RejectResource removes a resource from the moderation queue without publishing.
func (s *adminServiceImpl) RejectResource(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	return s.setStatus(ctx, id, models.StatusRejected)
}

func (s *adminServiceImpl) setStatus(ctx context.Context, id int64, status models.ResourceStatus) (*dto.ResourceResponse, error) {
	details, err := s.resourceRepo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("resourceID", id).Str("status", string(status)).Msg("Resource moderated")

	resp := toResourceResponse(details)
	return &resp, nil
}

// ListUsers retrieves all registered accounts.
func (s *adminServiceImpl) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}
	return responses, nil
}

// SetUserBlocked toggles an account's blocked flag. Admin accounts cannot be
// blocked.
func (s *adminServiceImpl) SetUserBlocked(ctx context.Context, id int64, blocked bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blocked && user.Role == models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("admin accounts cannot be blocked")
	}

	updated, err := s.userRepo.SetBlocked(ctx, id, blocked)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", id).Bool("blocked", blocked).Msg("User block state changed")

	resp := dto.NewUserResponse(updated)
	return &resp, nil
}

// GetStats aggregates catalog statistics over approved resources.
func (s *adminServiceImpl) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	top, err := s.resourceRepo.TopDownloads(ctx, topDownloadsLimit)
	if err != nil {
		return nil, fmt.Errorf("error getting top downloads: %w", err)
	}

	bySubject, err := s.resourceRepo.CountBySubject(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting by subject: %w", err)
	}

	stats := &dto.StatsResponse{
		TopDownloads: make([]dto.TopDownloadEntry, 0, len(top)),
		BySubject:    make([]dto.SubjectCount, 0, len(bySubject)),
	}
	for _, row := range top {
		stats.TopDownloads = append(stats.TopDownloads, dto.TopDownloadEntry{
			ID:             row.ID,
			Title:          row.Title,
			DownloadsCount: row.DownloadsCount,
		})
	}
	for _, row := range bySubject {
		stats.BySubject = append(stats.BySubject, dto.SubjectCount{
			Subject: row.Subject,
			Count:   row.Count,
		})
	}
	return stats, nil
}
