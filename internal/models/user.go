package models

import (
	"time"
)

type RoleName string

const (
	RoleUser  RoleName = "ROLE_USER"
	RoleAdmin RoleName = "ROLE_ADMIN"
)

// Role rows are immutable once created; exactly one row per name is expected.
type Role struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name RoleName `json:"name" gorm:"uniqueIndex;not null"`
}

func (Role) TableName() string {
	return "roles"
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"fullName"`
	Password  string    `json:"-" gorm:"not null"`
	Roles     []Role    `json:"roles" gorm:"many2many:user_roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
