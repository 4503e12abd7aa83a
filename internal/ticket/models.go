package ticket

import (
	"time"

	"campusit/internal/common"

	"github.com/google/uuid"
)

// Raw ticket statuses. The canonical four-stage view lives in common.
const (
	StatusSubmitted  = "SUBMITTED"
	StatusApproved   = "APPROVED"
	StatusQueued     = "QUEUED"
	StatusProcessing = "PROCESSING"
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusDeployed   = "DEPLOYED"
	StatusClosed     = "CLOSED"
)

var validStatuses = map[string]bool{
	StatusSubmitted:  true,
	StatusApproved:   true,
	StatusQueued:     true,
	StatusProcessing: true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusDeployed:   true,
	StatusClosed:     true,
}

// Issue types
const (
	IssueHardware = "HARDWARE"
	IssueSoftware = "SOFTWARE"
	IssueNetwork  = "NETWORK"
	IssueOther    = "OTHER"
)

// Ticket - service/maintenance issue raised against a lab or asset
type Ticket struct {
	common.BaseModel
	TicketNumber string          `json:"ticket_number" gorm:"uniqueIndex;not null;size:30"`
	Title        string          `json:"title" gorm:"not null;size:200"`
	Description  string          `json:"description" gorm:"size:1000"`
	IssueType    string          `json:"issue_type" gorm:"not null;size:20"`
	Priority     common.Priority `json:"priority" gorm:"not null;size:10;default:NORMAL"`
	Status       string          `json:"status" gorm:"not null;size:20;default:SUBMITTED;index"`
	DepartmentID uuid.UUID       `json:"department_id" gorm:"type:uuid;not null;index"`
	LabID        *uuid.UUID      `json:"lab_id,omitempty" gorm:"index"`
	AssetID      *uuid.UUID      `json:"asset_id,omitempty" gorm:"index"`
	CreatedByID  uuid.UUID       `json:"created_by_id" gorm:"type:uuid;not null;index"`
	AssignedToID *uuid.UUID      `json:"assigned_to_id,omitempty"`
	Resolution   string          `json:"resolution,omitempty" gorm:"size:1000"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type CreateTicketRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	IssueType    string          `json:"issue_type" binding:"required"`
	Priority     common.Priority `json:"priority"`
	DepartmentID string          `json:"department_id" binding:"required"`
	LabID        string          `json:"lab_id"`
	AssetID      string          `json:"asset_id"`
}

type AdvanceTicketRequest struct {
	Status       string `json:"status" binding:"required"`
	Resolution   string `json:"resolution"`
	AssignedToID string `json:"assigned_to_id"`
}
