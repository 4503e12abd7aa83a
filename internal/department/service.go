package department

import (
	"errors"
	"strings"

	"campusit/internal/auth"
	"campusit/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// =============================================
// 1. DEPARTMENT CRUD
// =============================================

func (s *Service) List() ([]Department, error) {
	var departments []Department
	if err := s.db.Order("name asc").Find(&departments).Error; err != nil {
		return nil, common.Storef(err, "failed to list departments")
	}
	return departments, nil
}

func (s *Service) Get(id uuid.UUID) (*Department, error) {
	var dept Department
	if err := s.db.Where("id = ?", id).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("department %s not found", id)
		}
		return nil, common.Storef(err, "failed to load department")
	}
	return &dept, nil
}

func (s *Service) Create(req *CreateDepartmentRequest) (*Department, error) {
	dept := Department{
		Name:        req.Name,
		Code:        strings.ToUpper(req.Code),
		Description: req.Description,
	}
	if req.HODID != "" {
		id, err := uuid.Parse(req.HODID)
		if err != nil {
			return nil, common.Validationf("invalid hod_id")
		}
		dept.HODID = &id
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dept).Error; err != nil {
			return err
		}
		if dept.HODID != nil {
			return tx.Model(&auth.User{}).Where("id = ?", *dept.HODID).
				Update("department_id", dept.ID).Error
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.Conflictf("Conflict: A department with this name or code already exists, or the selected HOD is already assigned.")
		}
		return nil, common.Storef(err, "failed to create department")
	}

	return &dept, nil
}

// Update edits a department and keeps the HOD 1:1 link bidirectionally
// consistent: the old HOD is detached before the new one is attached.
func (s *Service) Update(id uuid.UUID, req *UpdateDepartmentRequest) (*Department, error) {
	var newHODID *uuid.UUID
	if req.HODID != "" {
		parsed, err := uuid.Parse(req.HODID)
		if err != nil {
			return nil, common.Validationf("invalid hod_id")
		}
		newHODID = &parsed
	}

	var dept Department
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&dept).Error; err != nil {
			return err
		}
		oldHODID := dept.HODID

		updates := map[string]interface{}{"hod_id": newHODID}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Code != "" {
			updates["code"] = strings.ToUpper(req.Code)
		}
		if req.Description != "" {
			updates["description"] = req.Description
		}
		if err := tx.Model(&dept).Updates(updates).Error; err != nil {
			return err
		}

		if !uuidPtrEqual(oldHODID, newHODID) {
			if oldHODID != nil {
				if err := tx.Model(&auth.User{}).Where("id = ?", *oldHODID).
					Update("department_id", nil).Error; err != nil {
					return err
				}
			}
			if newHODID != nil {
				if err := tx.Model(&auth.User{}).Where("id = ?", *newHODID).
					Update("department_id", id).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("department %s not found", id)
		}
		if isUniqueViolation(err) {
			return nil, common.Conflictf("Conflict: A department with this name or code already exists, or the selected HOD is already assigned.")
		}
		return nil, common.Storef(err, "failed to update department")
	}

	return &dept, nil
}

// =============================================
// 2. CASCADING DECOMMISSION
// =============================================

// Decommission removes a department and unwinds every dependent reference in
// strict dependency order, all inside one transaction. On success nothing in
// users, labs, assets, tickets or requests still points at the department.
func (s *Service) Decommission(id uuid.UUID) error {
	var dept Department
	if err := s.db.Where("id = ?", id).First(&dept).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NotFoundf("department %s not found", id)
		}
		return common.Storef(err, "failed to load department")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return runDecommission(txDecommissionStore{tx: tx}, id)
	})
	if err != nil {
		return common.Storef(err, "Deactivation Critical Failure")
	}

	return nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func isUniqueViolation(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "23505"))
}
