package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

// Admin represents a dashboard user able to review officer records
type Admin struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"` // never serialized
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
