package activity

import (
	"time"

	"github.com/google/uuid"
)

// Entity kinds an audit entry can reference
const (
	EntityTicket     = "TICKET"
	EntityAsset      = "ASSET"
	EntityRequest    = "REQUEST"
	EntityDepartment = "DEPARTMENT"
	EntityLab        = "LAB"
	EntityUser       = "USER"
)

// ActivityLog - append-only audit record. Details is free text and doubles
// as a crude secondary filter key for the HOD/incharge redaction rules.
type ActivityLog struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Action       string     `json:"action" gorm:"not null;size:30"`
	Entity       string     `json:"entity" gorm:"not null;size:30"`
	EntityID     string     `json:"entity_id" gorm:"size:64"`
	Details      string     `json:"details" gorm:"size:500"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty" gorm:"index"`
	LabID        *uuid.UUID `json:"lab_id,omitempty" gorm:"index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
