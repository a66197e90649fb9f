package services

import (
	"context"
	"fmt"

	"github.com/ozan/studyshelf/internal/app/models/dto"
	"github.com/ozan/studyshelf/internal/app/repositories"
)

// BookmarkService defines the interface for bookmark operations
type BookmarkService interface {
	AddBookmark(ctx context.Context, userID int64, req *dto.BookmarkRequest) (*dto.BookmarkResponse, error)
	RemoveBookmark(ctx context.Context, userID, resourceID int64) error
	ListBookmarks(ctx context.Context, userID int64) ([]dto.BookmarkResponse, error)
}

// bookmarkServiceImpl implements BookmarkService
type bookmarkServiceImpl struct {
	bookmarkRepo repositories.IBookmarkRepository
	resourceRepo repositories.IResourceRepository
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(bookmarkRepo repositories.IBookmarkRepository, resourceRepo repositories.IResourceRepository) BookmarkService {
	return &bookmarkServiceImpl{
		bookmarkRepo: bookmarkRepo,
		resourceRepo: resourceRepo,
	}
}

// AddBookmark saves a resource to the caller's bookmark list. Bookmarking the
// same resource again has no effect.
func (s *bookmarkServiceImpl) AddBookmark(ctx context.Context, userID int64, req *dto.BookmarkRequest) (*dto.BookmarkResponse, error) {
	details, err := s.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	bookmark, err := s.bookmarkRepo.Upsert(ctx, userID, req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("error saving bookmark: %w", err)
	}

	return &dto.BookmarkResponse{
		ID: bookmark.ID,
		Resource: dto.BookmarkedResource{
			ID:             details.ID,
			Title:          details.Title,
			Subject:        details.Subject,
			Status:         details.Status,
			DownloadsCount: details.DownloadsCount,
		},
		CreatedAt: bookmark.CreatedAt,
	}, nil
}

// RemoveBookmark deletes a bookmark from the caller's list.
func (s *bookmarkServiceImpl) RemoveBookmark(ctx context.Context, userID, resourceID int64) error {
	return s.bookmarkRepo.Delete(ctx, userID, resourceID)
}

// ListBookmarks retrieves the caller's bookmarks, newest first.
func (s *bookmarkServiceImpl) ListBookmarks(ctx context.Context, userID int64) ([]dto.BookmarkResponse, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarks: %w", err)
	}

	responses := make([]dto.BookmarkResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		responses = append(responses, dto.BookmarkResponse{
			ID: b.ID,
			Resource: dto.BookmarkedResource{
				ID:             b.ResourceID,
				Title:          b.Title,
				Subject:        b.Subject,
				Status:         b.Status,
				DownloadsCount: b.DownloadsCount,
			},
			CreatedAt: b.CreatedAt,
		})
	}
	return responses, nil
}
