package domain

import "time"

// Profile holds the public contact card attached 1:1 to a user account.
// Username, email and type are read through the owning user, never stored here.
type Profile struct {
	ID           int64     `json:"-" gorm:"primaryKey"`
	UserID       int64     `json:"user" gorm:"uniqueIndex"`
	FirstName    string    `json:"first_name" gorm:"size:100"`
	LastName     string    `json:"last_name" gorm:"size:100"`
	File         string    `json:"file"`
	Location     string    `json:"location" gorm:"size:200"`
	Tel          string    `json:"tel" gorm:"size:20"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours" gorm:"size:100"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
