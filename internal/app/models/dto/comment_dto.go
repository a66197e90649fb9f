package dto

import "time"

// CreateCommentRequest adds a comment to a resource.
type CreateCommentRequest struct {
	ResourceID int64  `json:"resourceId" binding:"required,min=1"`
	Comment    string `json:"comment" binding:"required"`
}

// CommentResponse represents a comment with its author.
type CommentResponse struct {
	ID         int64        `json:"id"`
	ResourceID int64        `json:"resourceId"`
	User       UploaderInfo `json:"user"`
	Comment    string       `json:"comment"`
	CreatedAt  time.Time    `json:"createdAt"`
}
