package lab

import (
	"campusit/internal/common"

	"github.com/google/uuid"
)

// Lab - physical lab belonging to a department
type Lab struct {
	common.BaseModel
	Name         string     `json:"name" gorm:"not null;size:150"`
	Code         string     `json:"code" gorm:"uniqueIndex;not null;size:30"`
	DepartmentID uuid.UUID  `json:"department_id" gorm:"type:uuid;not null;index"`
	Capacity     int        `json:"capacity" gorm:"default:0"`
	Location     string     `json:"location" gorm:"size:150"`
	InchargeID   *uuid.UUID `json:"incharge_id,omitempty" gorm:"index"`
}

func (Lab) TableName() string {
	return "labs"
}

type CreateLabRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
	Capacity     int    `json:"capacity"`
	Location     string `json:"location"`
	InchargeID   string `json:"incharge_id"`
}
