package lab

import (
	"errors"
	"strconv"
	"strings"

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

func (s *Service) List(departmentID *uuid.UUID) ([]Lab, error) {
	query := s.db.Order("code asc")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var labs []Lab
	if err := query.Find(&labs).Error; err != nil {
		return nil, common.Storef(err, "failed to list labs")
	}
	return labs, nil
}

func (s *Service) Create(req *CreateLabRequest) (*Lab, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, common.Validationf("invalid department_id")
	}

	l := Lab{
		Name:         req.Name,
		Code:         strings.ToUpper(req.Code),
		DepartmentID: departmentID,
		Capacity:     req.Capacity,
		Location:     req.Location,
	}
	if req.InchargeID != "" {
		id, err := uuid.Parse(req.InchargeID)
		if err != nil {
			return nil, common.Validationf("invalid incharge_id")
		}
		l.InchargeID = &id
	}

	if err := s.db.Create(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "23505") {
			return nil, common.Conflictf("a lab with code %s already exists", l.Code)
		}
		return nil, common.Storef(err, "failed to create lab")
	}
	return &l, nil
}

// Provision creates a lab inside an existing transaction. Used by the
// LAB_SETUP request side effect so the lab commits or rolls back together
// with the status change that produced it.
func Provision(tx *gorm.DB, departmentID uuid.UUID, code, capacity, location string) (*Lab, error) {
	cap, err := strconv.Atoi(strings.TrimSpace(capacity))
	if err != nil {
		cap = 0
	}

	l := Lab{
		Name:         code,
		Code:         strings.ToUpper(strings.TrimSpace(code)),
		DepartmentID: departmentID,
		Capacity:     cap,
		Location:     location,
	}
	if err := tx.Create(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "23505") {
			return nil, common.Conflictf("a lab with code %s already exists", l.Code)
		}
		return nil, err
	}
	return &l, nil
}
