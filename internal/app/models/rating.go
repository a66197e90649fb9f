package models

import "time"

// Rating is a user's 1-5 score for a resource. The (resource_id, user_id) pair is
// unique; submitting again overwrites the previous value.
type Rating struct {
	ID         int64     `json:"id" db:"id"`
	ResourceID int64     `json:"resourceId" db:"resource_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Rating     int       `json:"rating" db:"rating"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
