package models

import "time"

// Resource represents an uploaded document in the catalog.
type Resource struct {
	ID             int64          `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	Subject        string         `json:"subject" db:"subject"`
	Tags           []string       `json:"tags" db:"tags"`
	FilePath       string         `json:"filePath" db:"file_path"`
	UploadedBy     int64          `json:"uploadedBy" db:"uploaded_by"`
	Status         ResourceStatus `json:"status" db:"status"`
	DownloadsCount int64          `json:"downloadsCount" db:"downloads_count"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}
