package models

import "time"

// Comment is a user comment on a resource. Comments are immutable once created;
// there is no update or delete path.
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	ResourceID int64     `json:"resourceId" db:"resource_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Comment    string    `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
