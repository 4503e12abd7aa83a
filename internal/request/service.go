package request

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"campusit/internal/activity"
	"campusit/internal/auth"
	"campusit/internal/common"
	"campusit/internal/lab"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db    *gorm.DB
	audit *activity.Logger
}

func NewService(db *gorm.DB, audit *activity.Logger) *Service {
	return &Service{db: db, audit: audit}
}

// =============================================
// 1. CREATE / LIST
// =============================================

func (s *Service) Create(actorID uuid.UUID, req *CreateRequestRequest) (*Request, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, common.Validationf("invalid department_id")
	}

	r := Request{
		Title:        req.Title,
		Description:  req.Description,
		Type:         req.Type,
		Priority:     req.Priority,
		Status:       StatusPending,
		DepartmentID: departmentID,
		CreatedByID:  actorID,
	}
	if r.Priority == "" {
		r.Priority = common.PriorityNormal
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextRequestNumber(tx)
		if err != nil {
			return err
		}
		r.RequestNumber = number
		return tx.Create(&r).Error
	})
	if err != nil {
		return nil, common.Storef(err, "failed to create request")
	}

	s.audit.Append(activity.Entry{
		UserID:       actorID,
		Action:       "CREATE",
		Entity:       activity.EntityRequest,
		EntityID:     r.ID.String(),
		Details:      fmt.Sprintf("Created request %s: %s", r.RequestNumber, r.Title),
		DepartmentID: &r.DepartmentID,
	})

	return &r, nil
}

// CreateAccountApproval files the ACCOUNT_APPROVAL request for a freshly
// self-registered account, inside the registration transaction.
func (s *Service) CreateAccountApproval(tx *gorm.DB, userID uuid.UUID, name string, departmentID *uuid.UUID) error {
	if departmentID == nil {
		return common.Validationf("account approval requires a department")
	}

	number, err := nextRequestNumber(tx)
	if err != nil {
		return err
	}
	r := Request{
		RequestNumber: number,
		Title:         fmt.Sprintf("Account Approval: %s", name),
		Description:   fmt.Sprintf("New account registered by %s, pending Dean approval", name),
		Type:          TypeAccountApproval,
		Priority:      common.PriorityNormal,
		Status:        StatusPending,
		DepartmentID:  *departmentID,
		CreatedByID:   userID,
	}
	return tx.Create(&r).Error
}

// List returns requests ordered by canonical stage (active queues first),
// most recently touched first within a stage.
func (s *Service) List(departmentID, createdByID *uuid.UUID) ([]Request, error) {
	query := s.db.Model(&Request{})
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if createdByID != nil {
		query = query.Where("created_by_id = ?", *createdByID)
	}

	var requests []Request
	if err := query.Find(&requests).Error; err != nil {
		return nil, common.Storef(err, "failed to list requests")
	}

	sort.SliceStable(requests, func(i, j int) bool {
		oi, oj := common.StageOrder(requests[i].Status), common.StageOrder(requests[j].Status)
		if oi != oj {
			return oi < oj
		}
		return requests[i].UpdatedAt.After(requests[j].UpdatedAt)
	})

	return requests, nil
}

// =============================================
// 2. ADVANCE (WORKFLOW ENGINE)
// =============================================

// Advance runs the full lifecycle step: load under lock, authorize, write the
// new status, apply side effects in the same transaction, then append one
// audit entry. On denial the request is left untouched. The audit append is
// deliberately outside the transaction: lifecycle correctness is hard,
// audit completeness is best-effort.
func (s *Service) Advance(id uuid.UUID, actorRole common.Role, actorID uuid.UUID, req *AdvanceRequestRequest) (*Request, error) {
	payload := Payload{
		AssignedAdminID: req.AssignedAdminID,
		LabCode:         req.LabCode,
		LabCapacity:     req.LabCapacity,
		LabLocation:     req.LabLocation,
	}

	var r Request
	var provisioned *lab.Lab
	var applied []Effect
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&r).Error; err != nil {
			return err
		}

		effects, err := Authorize(actorRole, r.Type, r.Status, req.Status, payload)
		if err != nil {
			return err
		}
		applied = effects

		updates := map[string]interface{}{"status": req.Status}
		if req.Remarks != "" {
			updates["remarks"] = req.Remarks
		}
		if req.AssignedAdminID != "" {
			adminID, err := uuid.Parse(req.AssignedAdminID)
			if err != nil {
				return common.Validationf("invalid assigned_admin_id")
			}
			updates["assigned_admin_id"] = adminID
		}

		for _, effect := range effects {
			switch effect {
			case EffectStampApproval:
				updates["approved_by_id"] = actorID
				updates["approved_at"] = time.Now()

			case EffectProvisionLab:
				created, err := lab.Provision(tx, r.DepartmentID, req.LabCode, req.LabCapacity, req.LabLocation)
				if err != nil {
					return err
				}
				provisioned = created

			case EffectActivateRequester:
				if err := tx.Model(&auth.User{}).Where("id = ?", r.CreatedByID).
					Update("is_active", true).Error; err != nil {
					return err
				}

			case EffectDeleteRequester:
				if err := tx.Where("id = ?", r.CreatedByID).Delete(&auth.User{}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&r).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("request %s not found", id)
		}
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, common.Storef(err, "failed to advance request")
	}

	var provisionedCode string
	var labID *uuid.UUID
	if provisioned != nil {
		provisionedCode = provisioned.Code
		labID = &provisioned.ID
	}
	details := advanceDetails(r.RequestNumber, req.Status, applied, provisionedCode)
	s.audit.Append(activity.Entry{
		UserID:       actorID,
		Action:       "UPDATE",
		Entity:       activity.EntityRequest,
		EntityID:     r.ID.String(),
		Details:      details,
		DepartmentID: &r.DepartmentID,
		LabID:        labID,
	})

	return &r, nil
}

// advanceDetails renders the single audit line for a transition, naming every
// side effect applied alongside the status change.
func advanceDetails(requestNumber, status string, effects []Effect, provisionedLabCode string) string {
	details := fmt.Sprintf("Updated request %s status to %s", requestNumber, status)
	for _, effect := range effects {
		switch effect {
		case EffectStampApproval:
			details += ", stamped approval"
		case EffectProvisionLab:
			details = fmt.Sprintf("%s, provisioned lab %s", details, provisionedLabCode)
		case EffectActivateRequester:
			details += ", activated requester account"
		case EffectDeleteRequester:
			details += ", deleted requester account"
		}
	}
	return details
}

// advisory lock class for request numbering, keyed per year
const requestNumberLockKey = 421002

func nextRequestNumber(tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	// Serialize concurrent creates for the year; without this two
	// transactions count the same N and both claim N+1.
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", requestNumberLockKey, year).Error; err != nil {
		return "", err
	}

	var count int64
	if err := tx.Model(&Request{}).
		Where("request_number LIKE ?", fmt.Sprintf("REQ-%d-%%", year)).
		Count(&count).Error; err != nil {
		return "", err
	}
	return formatRequestNumber(year, count+1), nil
}

func formatRequestNumber(year int, seq int64) string {
	return fmt.Sprintf("REQ-%d-%04d", year, seq)
}
