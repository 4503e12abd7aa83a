package department

import (
	"fmt"

	"campusit/internal/asset"
	"campusit/internal/auth"
	"campusit/internal/lab"
	"campusit/internal/request"
	"campusit/internal/ticket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// decommissionStore is the mutation surface the cascade runs over. The
// production implementation wraps a transaction; injecting it keeps the step
// sequence itself testable.
type decommissionStore interface {
	DetachUsers(departmentID uuid.UUID) error
	ClearHOD(departmentID uuid.UUID) error
	DeleteTickets(departmentID uuid.UUID) error
	DeleteRequests(departmentID uuid.UUID) error
	DeleteAssets(departmentID uuid.UUID) error
	DeleteLabs(departmentID uuid.UUID) error
	DeleteDepartment(departmentID uuid.UUID) error
	DanglingReferences(departmentID uuid.UUID) (int64, error)
}

// runDecommission unwinds every dependent reference in strict dependency
// order, then scans for anything still pointing at the department. Any step
// failing stops the sequence so the surrounding transaction rolls back whole.
func runDecommission(store decommissionStore, id uuid.UUID) error {
	steps := []func(uuid.UUID) error{
		store.DetachUsers,   // 1. users survive, unassigned
		store.ClearHOD,      // 2. break the 1:1 back-reference
		store.DeleteTickets, // 3-6. dependents before the department row
		store.DeleteRequests,
		store.DeleteAssets,
		store.DeleteLabs,
		store.DeleteDepartment, // 7. finally the department record
	}
	for _, step := range steps {
		if err := step(id); err != nil {
			return err
		}
	}

	remaining, err := store.DanglingReferences(id)
	if err != nil {
		return err
	}
	if remaining != 0 {
		return fmt.Errorf("decommission left %d references to department %s", remaining, id)
	}
	return nil
}

// txDecommissionStore runs the cascade inside one gorm transaction.
type txDecommissionStore struct {
	tx *gorm.DB
}

func (s txDecommissionStore) DetachUsers(id uuid.UUID) error {
	return s.tx.Model(&auth.User{}).Where("department_id = ?", id).
		Update("department_id", nil).Error
}

func (s txDecommissionStore) ClearHOD(id uuid.UUID) error {
	return s.tx.Model(&Department{}).Where("id = ?", id).
		Update("hod_id", nil).Error
}

func (s txDecommissionStore) DeleteTickets(id uuid.UUID) error {
	return s.tx.Where("department_id = ?", id).Delete(&ticket.Ticket{}).Error
}

func (s txDecommissionStore) DeleteRequests(id uuid.UUID) error {
	return s.tx.Where("department_id = ?", id).Delete(&request.Request{}).Error
}

func (s txDecommissionStore) DeleteAssets(id uuid.UUID) error {
	return s.tx.Where("department_id = ?", id).Delete(&asset.Asset{}).Error
}

func (s txDecommissionStore) DeleteLabs(id uuid.UUID) error {
	return s.tx.Where("department_id = ?", id).Delete(&lab.Lab{}).Error
}

func (s txDecommissionStore) DeleteDepartment(id uuid.UUID) error {
	return s.tx.Where("id = ?", id).Delete(&Department{}).Error
}

// DanglingReferences counts everything still referencing the department,
// including the department row itself.
func (s txDecommissionStore) DanglingReferences(id uuid.UUID) (int64, error) {
	refs := []struct {
		model  interface{}
		column string
	}{
		{&auth.User{}, "department_id"},
		{&ticket.Ticket{}, "department_id"},
		{&request.Request{}, "department_id"},
		{&asset.Asset{}, "department_id"},
		{&lab.Lab{}, "department_id"},
		{&Department{}, "id"},
	}

	var total int64
	for _, ref := range refs {
		var n int64
		if err := s.tx.Model(ref.model).Where(ref.column+" = ?", id).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
