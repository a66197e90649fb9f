package dto

import (
	"time"

	"github.com/ozan/studyshelf/internal/app/models"
)

// BookmarkRequest adds or removes a bookmark for the caller.
type BookmarkRequest struct {
	ResourceID int64 `json:"resourceId" binding:"required,min=1"`
}

// BookmarkedResource carries the catalog fields shown in a bookmark listing.
type BookmarkedResource struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Subject        string                `json:"subject"`
	Status         models.ResourceStatus `json:"status"`
	DownloadsCount int64                 `json:"downloadsCount"`
}

// BookmarkResponse represents a saved bookmark with its resource summary.
type BookmarkResponse struct {
	ID        int64              `json:"id"`
	Resource  BookmarkedResource `json:"resource"`
	CreatedAt time.Time          `json:"createdAt"`
}
