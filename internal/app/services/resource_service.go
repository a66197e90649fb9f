package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/ozan/studyshelf/internal/app/auth"
	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
	"github.com/ozan/studyshelf/internal/pkg/apperrors"
	"github.com/ozan/studyshelf/internal/pkg/filestorage"
	"github.com/ozan/studyshelf/internal/pkg/logger"
)

// ResourceService defines the interface for catalog operations
type ResourceService interface {
	ListResources(ctx context.Context, filter *dto.ResourceFilterRequest, callerRole models.RoleType) ([]dto.ResourceResponse, error)
	GetResourceByID(ctx context.Context, id int64) (*dto.ResourceResponse, error)
	CreateResource(ctx context.Context, userID int64, role models.RoleType, req *dto.CreateResourceRequest, file *multipart.FileHeader) (*dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, id, userID int64, role models.RoleType) error
	RegisterDownload(ctx context.Context, id int64) (*dto.DownloadResponse, error)
}

// resourceServiceImpl implements ResourceService
type resourceServiceImpl struct {
	resourceRepo   repositories.IResourceRepository
	authzService   *auth.AuthorizationService
	fileStorage    *filestorage.LocalStorage
	maxUploadBytes int64
}

// NewResourceService creates a new ResourceService
func NewResourceService(
	resourceRepo repositories.IResourceRepository,
	authzService *auth.AuthorizationService,
	fileStorage *filestorage.LocalStorage,
	maxUploadBytes int64,
) ResourceService {
	return &resourceServiceImpl{
		resourceRepo:   resourceRepo,
		authzService:   authzService,
		fileStorage:    fileStorage,
		maxUploadBytes: maxUploadBytes,
	}
}

// toResourceResponse converts a repository row to the response contract.
func toResourceResponse(d *repositories.ResourceDetails) dto.ResourceResponse {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.ResourceResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Subject:     d.Subject,
		Tags:        tags,
		FilePath:    d.FilePath,
		UploadedBy: dto.UploaderInfo{
			ID:   d.UploadedBy,
			Name: d.UploaderName,
			Role: d.UploaderRole,
		},
		Status:         d.Status,
		DownloadsCount: d.DownloadsCount,
		Rating: dto.RatingSummary{
			Avg:   d.RatingAvg,
			Count: d.RatingCount,
		},
		CreatedAt: d.CreatedAt,
	}
}

// ListResources retrieves the catalog with optional filters. Only admins may
// list non-approved resources; everyone else sees the approved catalog.
func (s *resourceServiceImpl) ListResources(ctx context.Context, filter *dto.ResourceFilterRequest, callerRole models.RoleType) ([]dto.ResourceResponse, error) {
	status := models.StatusApproved
	if callerRole == models.RoleAdmin && filter.Status != "" {
		requested := models.ResourceStatus(filter.Status)
		if !requested.IsValid() {
			return nil, apperrors.NewBadRequestError("unknown status: " + filter.Status)
		}
		status = requested
	}

	params := repositories.ListResourcesParams{
		Query:    filter.Query,
		Subject:  filter.Subject,
		Tags:     filter.ParsedTags(),
		Uploader: filter.Uploader,
		Status:   status,
		SortBy:   filter.SortBy,
		Order:    filter.Order,
	}

	items, err := s.resourceRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}

	responses := make([]dto.ResourceResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toResourceResponse(item))
	}
	return responses, nil
}

// GetResourceByID retrieves a single resource with uploader and rating details.
func (s *resourceServiceImpl) GetResourceByID(ctx context.Context, id int64) (*dto.ResourceResponse, error) {
	details, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResourceResponse(details)
	return &resp, nil
}

// CreateResource stores the uploaded file and creates the catalog entry.
// Admin uploads go live immediately; everyone else enters the moderation queue.
func (s *resourceServiceImpl) CreateResource(ctx context.Context, userID int64, role models.RoleType, req *dto.CreateResourceRequest, file *multipart.FileHeader) (*dto.ResourceResponse, error) {
	if file == nil {
		return nil, apperrors.ErrFileRequired
	}
	if s.maxUploadBytes > 0 && file.Size > s.maxUploadBytes {
		return nil, apperrors.ErrFileTooLarge
	}

	filePath, err := s.fileStorage.SaveFile(file)
	if err != nil {
		return nil, fmt.Errorf("error saving file: %w", err)
	}

	status := models.StatusPending
	if role == models.RoleAdmin {
		status = models.StatusApproved
	}

	resource := &models.Resource{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Tags:        req.ParsedTags(),
		FilePath:    filePath,
		UploadedBy:  userID,
		Status:      status,
	}

	if _, err := s.resourceRepo.Create(ctx, resource); err != nil {
		// Orphaned file cleanup; the catalog entry never existed
		if removeErr := s.fileStorage.DeleteFile(filePath); removeErr != nil {
			logger.Error().Err(removeErr).Str("path", filePath).Msg("Failed to remove file after insert failure")
		}
		return nil, fmt.Errorf("error creating resource: %w", err)
	}

	logger.Info().
		Int64("resourceID", resource.ID).
		Int64("userID", userID).
		Str("status", string(status)).
		Msg("Resource uploaded")

	details, err := s.resourceRepo.GetByID(ctx, resource.ID)
	if err != nil {
		return nil, err
	}

	resp := toResourceResponse(details)
	return &resp, nil
}

// DeleteResource removes a resource and its stored file. Only the uploader or
// an admin may delete.
func (s *resourceServiceImpl) DeleteResource(ctx context.Context, id, userID int64, role models.RoleType) error {
	if err := s.authzService.ValidateResourceOwnership(ctx, id, userID, role); err != nil {
		return err
	}

	details, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.resourceRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(details.FilePath); err != nil {
		logger.Error().Err(err).Int64("resourceID", id).Msg("Failed to delete file from storage")
	}

	logger.Info().Int64("resourceID", id).Int64("userID", userID).Msg("Resource deleted")
	return nil
}

// RegisterDownload atomically bumps the download counter and returns the new value.
func (s *resourceServiceImpl) RegisterDownload(ctx context.Context, id int64) (*dto.DownloadResponse, error) {
	count, err := s.resourceRepo.IncrementDownloads(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DownloadResponse{DownloadsCount: count}, nil
}
