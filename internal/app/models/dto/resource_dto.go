package dto

import (
	"strings"
	"time"

	"github.com/ozan/studyshelf/internal/app/models"
)

// CreateResourceRequest carries the multipart form fields of an upload. The file
// itself is read from the "file" part by the controller.
type CreateResourceRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Subject     string `form:"subject" binding:"required"`
	Tags        string `form:"tags"` // comma-separated
}

// ParsedTags splits the comma-separated tag list, trimming blanks.
func (r *CreateResourceRequest) ParsedTags() []string {
	if r.Tags == "" {
		return []string{}
	}
	parts := strings.Split(r.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ResourceFilterRequest holds the catalog listing filters.
type ResourceFilterRequest struct {
	Query    string `form:"q"`
	Subject  string `form:"subject"`
	Tags     string `form:"tags"` // comma-separated, any match
	Uploader int64  `form:"uploader"`
	Status   string `form:"status"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order"`
}

// ParsedTags splits the comma-separated tag filter, trimming blanks.
func (r *ResourceFilterRequest) ParsedTags() []string {
	if r.Tags == "" {
		return nil
	}
	parts := strings.Split(r.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// UploaderInfo identifies the user who uploaded a resource.
type UploaderInfo struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Role models.RoleType `json:"role"`
}

// RatingSummary is the aggregated rating merged into catalog listings.
type RatingSummary struct {
	Avg   float64 `json:"avg"`
	Count int64   `json:"count"`
}

// ResourceResponse represents a catalog entry.
type ResourceResponse struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Subject        string                `json:"subject"`
	Tags           []string              `json:"tags"`
	FilePath       string                `json:"filePath"`
	UploadedBy     UploaderInfo          `json:"uploadedBy"`
	Status         models.ResourceStatus `json:"status"`
	DownloadsCount int64                 `json:"downloadsCount"`
	Rating         RatingSummary         `json:"rating"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// DownloadResponse is returned by the download counter endpoint.
type DownloadResponse struct {
	DownloadsCount int64 `json:"downloadsCount"`
}
