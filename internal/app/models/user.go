package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Ayse Demir"`
	Email     string    `json:"email" db:"email" example:"ayse@example.com"`
	Password  string    `json:"-" db:"password"` // Hashed, excluded from JSON
	Role      RoleType  `json:"role" db:"role" example:"student"`
	IsBlocked bool      `json:"isBlocked" db:"is_blocked" example:"false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
