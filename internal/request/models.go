package request

import (
	"time"

	"campusit/internal/common"

	"github.com/google/uuid"
)

// Raw request statuses
const (
	StatusPending    = "PENDING"
	StatusApproved   = "APPROVED"
	StatusDeclined   = "DECLINED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusClosed     = "CLOSED"
)

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusApproved:   true,
	StatusDeclined:   true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusClosed:     true,
}

// Request types
const (
	TypeNewSystem       = "NEW_SYSTEM"
	TypeHardwareRepair  = "HARDWARE_REPAIR"
	TypeLabSetup        = "LAB_SETUP"
	TypeAccountApproval = "ACCOUNT_APPROVAL"
	TypeSoftwareLicense = "SOFTWARE_LICENSE"
)

// Request - resource/account/lab-setup request flowing Dean -> Admin
type Request struct {
	common.BaseModel
	RequestNumber   string          `json:"request_number" gorm:"uniqueIndex;not null;size:30"`
	Title           string          `json:"title" gorm:"not null;size:200"`
	Description     string          `json:"description" gorm:"size:1000"`
	Type            string          `json:"type" gorm:"not null;size:30;index"`
	Priority        common.Priority `json:"priority" gorm:"not null;size:10;default:NORMAL"`
	Status          string          `json:"status" gorm:"not null;size:20;default:PENDING;index"`
	Remarks         string          `json:"remarks,omitempty" gorm:"size:500"`
	DepartmentID    uuid.UUID       `json:"department_id" gorm:"type:uuid;not null;index"`
	CreatedByID     uuid.UUID       `json:"created_by_id" gorm:"type:uuid;not null;index"`
	AssignedAdminID *uuid.UUID      `json:"assigned_admin_id,omitempty"`
	ApprovedByID    *uuid.UUID      `json:"approved_by_id,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
}

func (Request) TableName() string {
	return "requests"
}

type CreateRequestRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Type         string          `json:"type" binding:"required"`
	Priority     common.Priority `json:"priority"`
	DepartmentID string          `json:"department_id" binding:"required"`
}

// AdvanceRequestRequest is the inbound transition payload from the API
// boundary. Which fields matter depends on the transition being attempted.
type AdvanceRequestRequest struct {
	Status          string `json:"status" binding:"required"`
	Remarks         string `json:"remarks"`
	AssignedAdminID string `json:"assigned_admin_id"`
	LabCode         string `json:"lab_code"`
	LabCapacity     string `json:"lab_capacity"`
	LabLocation     string `json:"lab_location"`
}
