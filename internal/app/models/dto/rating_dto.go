package dto

import "time"

// RateRequest submits or replaces the caller's rating for a resource.
type RateRequest struct {
	ResourceID int64 `json:"resourceId" binding:"required,min=1"`
	Rating     int   `json:"rating" binding:"required,min=1,max=5"`
}

// RatingResponse is the stored rating row.
type RatingResponse struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resourceId"`
	UserID     int64     `json:"userId"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
