package services

import (
	"context"
	"fmt"

	"github.com/ozan/studyshelf/internal/app/models"
	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
)

// CommentService defines the interface for comment operations
type CommentService interface {
	CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, resourceID int64) ([]dto.CommentResponse, error)
}

// commentServiceImpl implements CommentService
type commentServiceImpl struct {
	commentRepo  repositories.ICommentRepository
	resourceRepo repositories.IResourceRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.ICommentRepository, resourceRepo repositories.IResourceRepository) CommentService {
	return &commentServiceImpl{
		commentRepo:  commentRepo,
		resourceRepo: resourceRepo,
	}
}

// CreateComment adds a comment to an existing resource.
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// The resource must exist; surfaces a 404 instead of a foreign key error
	if _, err := s.resourceRepo.GetByID(ctx, req.ResourceID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ResourceID: req.ResourceID,
		UserID:     userID,
		Comment:    req.Comment,
	}

	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	return &dto.CommentResponse{
		ID:         comment.ID,
		ResourceID: comment.ResourceID,
		User:       dto.UploaderInfo{ID: userID},
		Comment:    comment.Comment,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

// ListComments retrieves a resource's comments, newest first.
func (s *commentServiceImpl) ListComments(ctx context.Context, resourceID int64) ([]dto.CommentResponse, error) {
	if _, err := s.resourceRepo.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, dto.CommentResponse{
			ID:         c.ID,
			ResourceID: c.ResourceID,
			User: dto.UploaderInfo{
				ID:   c.UserID,
				Name: c.UserName,
				Role: c.UserRole,
			},
			Comment:   c.Comment,
			CreatedAt: c.CreatedAt,
		})
	}
	return responses, nil
}
