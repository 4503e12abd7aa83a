package common

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel - shared base for all persisted entities
type BaseModel struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// =============================================
// ROLES
// =============================================

type Role string

const (
	RoleDean        Role = "DEAN"
	RoleAdmin       Role = "ADMIN"
	RoleHOD         Role = "HOD"
	RoleLabIncharge Role = "LAB_INCHARGE"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDean, RoleAdmin, RoleHOD, RoleLabIncharge:
		return true
	}
	return false
}

// =============================================
// PRIORITY
// =============================================

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityNormal   Priority = "NORMAL"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)
