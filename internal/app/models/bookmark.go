package models

import "time"

// Bookmark is a user's saved reference to a resource. The (user_id, resource_id)
// pair is unique; adding the same bookmark twice is a no-op.
type Bookmark struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	ResourceID int64     `json:"resourceId" db:"resource_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
