package activity

import (
	"strings"

	"campusit/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Substrings redacted from scoped feeds. Entries about account approvals and
// HOD-level actions stay visible only to their author, the Dean and Admins.
const (
	redactHODMarker       = "(HOD)"
	redactAccountApproval = "Account Approval"
	redactNewAccount      = "New account registered"
)

// Filter describes whose feed is being read. It builds the role-scoped
// visibility predicate: everyone sees their own entries, HODs additionally
// see their department (minus redacted content), lab incharges see
// ticket/asset/request entries scoped to their lab or department, and
// Dean/Admin see everything.
type Filter struct {
	UserID       uuid.UUID
	Role         common.Role
	DepartmentID *uuid.UUID
	LabID        *uuid.UUID
}

// Matches is the canonical predicate, evaluated per entry.
func (f Filter) Matches(e *ActivityLog) bool {
	if e.UserID == f.UserID {
		return true
	}

	switch f.Role {
	case common.RoleDean, common.RoleAdmin:
		return true

	case common.RoleHOD:
		if f.DepartmentID == nil || e.DepartmentID == nil || *e.DepartmentID != *f.DepartmentID {
			return false
		}
		if strings.Contains(e.Details, redactHODMarker) ||
			strings.Contains(e.Details, redactAccountApproval) {
			return false
		}
		return true

	case common.RoleLabIncharge:
		inScope := (f.LabID != nil && e.LabID != nil && *e.LabID == *f.LabID) ||
			(f.DepartmentID != nil && e.DepartmentID != nil && *e.DepartmentID == *f.DepartmentID)
		if !inScope {
			return false
		}
		switch e.Entity {
		case EntityTicket, EntityAsset, EntityRequest:
		default:
			return false
		}
		if strings.Contains(e.Details, redactAccountApproval) ||
			strings.Contains(e.Details, redactNewAccount) {
			return false
		}
		return true
	}

	return false
}

// Scope applies the same predicate as Matches as SQL conditions so the feed
// query stays bounded by LIMIT instead of scanning the whole table.
func (f Filter) Scope(db *gorm.DB) *gorm.DB {
	own := db.Session(&gorm.Session{NewDB: true}).Where("user_id = ?", f.UserID)

	switch f.Role {
	case common.RoleDean, common.RoleAdmin:
		return db

	case common.RoleHOD:
		if f.DepartmentID == nil {
			return db.Where(own)
		}
		scoped := db.Session(&gorm.Session{NewDB: true}).
			Where("department_id = ?", *f.DepartmentID).
			Where("details NOT LIKE ?", "%"+redactHODMarker+"%").
			Where("details NOT LIKE ?", "%"+redactAccountApproval+"%")
		return db.Where(own.Or(scoped))

	case common.RoleLabIncharge:
		location := db.Session(&gorm.Session{NewDB: true})
		switch {
		case f.LabID != nil && f.DepartmentID != nil:
			location = location.Where("lab_id = ? OR department_id = ?", *f.LabID, *f.DepartmentID)
		case f.LabID != nil:
			location = location.Where("lab_id = ?", *f.LabID)
		case f.DepartmentID != nil:
			location = location.Where("department_id = ?", *f.DepartmentID)
		default:
			return db.Where(own)
		}
		scoped := db.Session(&gorm.Session{NewDB: true}).
			Where(location).
			Where("entity IN ?", []string{EntityTicket, EntityAsset, EntityRequest}).
			Where("details NOT LIKE ?", "%"+redactAccountApproval+"%").
			Where("details NOT LIKE ?", "%"+redactNewAccount+"%")
		return db.Where(own.Or(scoped))
	}

	return db.Where(own)
}
