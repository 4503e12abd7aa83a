package department

import (
	"campusit/internal/common"

	"github.com/google/uuid"
)

// Department - organizational unit owning labs, assets, tickets and requests.
// HODID is a 1:1 back-reference to the heading user; the forward reference is
// the user's DepartmentID and both are kept consistent by the service layer,
// not by storage constraints.
type Department struct {
	common.BaseModel
	Name        string     `json:"name" gorm:"uniqueIndex;not null;size:150"`
	Code        string     `json:"code" gorm:"uniqueIndex;not null;size:20"`
	Description string     `json:"description" gorm:"size:500"`
	HODID       *uuid.UUID `json:"hod_id,omitempty" gorm:"uniqueIndex"`
}

func (Department) TableName() string {
	return "departments"
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	HODID       string `json:"hod_id"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	HODID       string `json:"hod_id"`
}
