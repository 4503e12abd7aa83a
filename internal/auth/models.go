package auth

import (
	"campusit/internal/common"

	"github.com/google/uuid"
)

// User - institutional account (Dean, Admin, HOD, Lab-Incharge)
type User struct {
	common.BaseModel
	Email        string      `json:"email" gorm:"uniqueIndex;not null;size:100"`
	Name         string      `json:"name" gorm:"not null;size:100"`
	PasswordHash string      `json:"-" gorm:"not null;size:255"`
	Role         common.Role `json:"role" gorm:"not null;size:20;index"`
	DepartmentID *uuid.UUID  `json:"department_id,omitempty" gorm:"index"`
	LabID        *uuid.UUID  `json:"lab_id,omitempty" gorm:"index"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
}

func (User) TableName() string {
	return "users"
}

// =============================================
// REQUEST / RESPONSE TYPES
// =============================================

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	DepartmentID string `json:"department_id"`
}
