package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleBusiness UserRole = "business"
)

func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RoleBusiness
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"type" gorm:"size:10"`
	IsStaff      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
