package asset

import (
	"campusit/internal/common"

	"github.com/google/uuid"
)

// Asset statuses
const (
	StatusActive           = "ACTIVE"
	StatusUnderMaintenance = "UNDER_MAINTENANCE"
	StatusDamaged          = "DAMAGED"
	StatusRetired          = "RETIRED"
)

var validStatuses = map[string]bool{
	StatusActive:           true,
	StatusUnderMaintenance: true,
	StatusDamaged:          true,
	StatusRetired:          true,
}

// Asset types
const (
	TypeDesktop = "DESKTOP"
	TypeLaptop  = "LAPTOP"
	TypeServer  = "SERVER"
	TypeRouter  = "ROUTER"
	TypeSwitch  = "SWITCH"
	TypePrinter = "PRINTER"
	TypeOther   = "OTHER"
)

// Asset - tracked hardware item
type Asset struct {
	common.BaseModel
	AssetNumber  string     `json:"asset_number" gorm:"uniqueIndex;not null;size:50"`
	Name         string     `json:"name" gorm:"not null;size:150"`
	Type         string     `json:"type" gorm:"not null;size:20;index"`
	Category     string     `json:"category" gorm:"size:50"`
	Status       string     `json:"status" gorm:"not null;size:30;default:ACTIVE;index"`
	DepartmentID uuid.UUID  `json:"department_id" gorm:"type:uuid;not null;index"`
	LabID        *uuid.UUID `json:"lab_id,omitempty" gorm:"index"`
	Processor    string     `json:"processor,omitempty" gorm:"size:100"`
	RAM          string     `json:"ram,omitempty" gorm:"size:50"`
	HDD          string     `json:"hdd,omitempty" gorm:"size:50"`
	Brand        string     `json:"brand,omitempty" gorm:"size:50"`
	Model        string     `json:"model,omitempty" gorm:"size:100"`
	SerialNumber string     `json:"serial_number,omitempty" gorm:"size:100"`
	MACAddress   string     `json:"mac_address,omitempty" gorm:"size:20"`
	Location     string     `json:"location,omitempty" gorm:"size:150"`
}

func (Asset) TableName() string {
	return "assets"
}

type CreateAssetRequest struct {
	AssetNumber  string `json:"asset_number" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	DepartmentID string `json:"department_id" binding:"required"`
	LabID        string `json:"lab_id"`
	Processor    string `json:"processor"`
	RAM          string `json:"ram"`
	HDD          string `json:"hdd"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	MACAddress   string `json:"mac_address"`
	Location     string `json:"location"`
}

type ListFilter struct {
	Search       string
	DepartmentID *uuid.UUID
	LabID        *uuid.UUID
	Status       string
	Limit        int
	Offset       int
}
