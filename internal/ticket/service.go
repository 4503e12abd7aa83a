package ticket

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"campusit/internal/activity"
	"campusit/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderingPolicy names the deliberate absence of forward-only enforcement on
// ticket transitions: an admin may move a RESOLVED ticket back to SUBMITTED
// (re-opening). Flip to "ordering-strict" if that ever becomes unwanted.
const OrderingPolicy = "ordering-permissive"

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

func (s *Service) Create(actorID uuid.UUID, req *CreateTicketRequest) (*Ticket, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, common.Validationf("invalid department_id")
	}

	t := Ticket{
		Title:        req.Title,
		Description:  req.Description,
		IssueType:    req.IssueType,
		Priority:     req.Priority,
		Status:       StatusSubmitted,
		DepartmentID: departmentID,
		CreatedByID:  actorID,
	}
	if t.Priority == "" {
		t.Priority = common.PriorityNormal
	}
	if req.LabID != "" {
		id, err := uuid.Parse(req.LabID)
		if err != nil {
			return nil, common.Validationf("invalid lab_id")
		}
		t.LabID = &id
	}
	if req.AssetID != "" {
		id, err := uuid.Parse(req.AssetID)
		if err != nil {
			return nil, common.Validationf("invalid asset_id")
		}
		t.AssetID = &id
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextTicketNumber(tx)
		if err != nil {
			return err
		}
		t.TicketNumber = number
		return tx.Create(&t).Error
	})
	if err != nil {
		return nil, common.Storef(err, "failed to create ticket")
	}

	s.audit.Append(activity.Entry{
		UserID:       actorID,
		Action:       "CREATE",
		Entity:       activity.EntityTicket,
		EntityID:     t.ID.String(),
		Details:      fmt.Sprintf("Created ticket %s: %s", t.TicketNumber, t.Title),
		DepartmentID: &t.DepartmentID,
		LabID:        t.LabID,
	})

	return &t, nil
}

// List returns tickets ordered for triage: active canonical stages first
// (PENDING, then IN_PROCESS), newest first within a stage.
func (s *Service) List(departmentID, createdByID *uuid.UUID) ([]Ticket, error) {
	query := s.db.Model(&Ticket{})
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if createdByID != nil {
		query = query.Where("created_by_id = ?", *createdByID)
	}

	var tickets []Ticket
	if err := query.Find(&tickets).Error; err != nil {
		return nil, common.Storef(err, "failed to list tickets")
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		oi, oj := common.StageOrder(tickets[i].Status), common.StageOrder(tickets[j].Status)
		if oi != oj {
			return oi < oj
		}
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})

	return tickets, nil
}

// =============================================
// 2. ADVANCE (WORKFLOW ENGINE)
// =============================================

// Advance moves a ticket to a new raw status. Only Admin and Dean may change
// ticket status. The row is locked for the duration of the write so two
// concurrent advances on the same ticket serialize instead of silently losing
// one update. Moving into RESOLVED or DEPLOYED stamps resolved_at.
func (s *Service) Advance(id uuid.UUID, actorRole common.Role, actorID uuid.UUID, req *AdvanceTicketRequest) (*Ticket, error) {
	if actorRole != common.RoleAdmin && actorRole != common.RoleDean {
		return nil, common.Forbiddenf("role %s is not permitted to change ticket status", actorRole)
	}
	if !validStatuses[req.Status] {
		return nil, common.Validationf("unknown ticket status %q", req.Status)
	}

	var assignedToID *uuid.UUID
	if req.AssignedToID != "" {
		parsed, err := uuid.Parse(req.AssignedToID)
		if err != nil {
			return nil, common.Validationf("invalid assigned_to_id")
		}
		assignedToID = &parsed
	}

	var t Ticket
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&t).Error; err != nil {
			return err
		}

		return tx.Model(&t).Updates(advanceUpdates(req, assignedToID, time.Now())).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("ticket %s not found", id)
		}
		return nil, common.Storef(err, "failed to update ticket")
	}

	s.audit.Append(activity.Entry{
		UserID:       actorID,
		Action:       "UPDATE",
		Entity:       activity.EntityTicket,
		EntityID:     t.ID.String(),
		Details:      fmt.Sprintf("Updated ticket %s status to %s", t.TicketNumber, req.Status),
		DepartmentID: &t.DepartmentID,
		LabID:        t.LabID,
	})

	return &t, nil
}

// advanceUpdates builds the column set for a status change. RESOLVED and
// DEPLOYED are the two raw statuses that close out work, so they stamp
// resolved_at.
func advanceUpdates(req *AdvanceTicketRequest, assignedToID *uuid.UUID, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"status": req.Status}
	if req.Resolution != "" {
		updates["resolution"] = req.Resolution
	}
	if assignedToID != nil {
		updates["assigned_to_id"] = *assignedToID
	}
	if req.Status == StatusResolved || req.Status == StatusDeployed {
		updates["resolved_at"] = now
	}
	return updates
}

// advisory lock class for ticket numbering, keyed per year
const ticketNumberLockKey = 421001

func nextTicketNumber(tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	// Serialize concurrent creates for the year; without this two
	// transactions count the same N and both claim N+1.
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", ticketNumberLockKey, year).Error; err != nil {
		return "", err
	}

	var count int64
	if err := tx.Model(&Ticket{}).
		Where("ticket_number LIKE ?", fmt.Sprintf("TKT-%d-%%", year)).
		Count(&count).Error; err != nil {
		return "", err
	}
	return formatTicketNumber(year, count+1), nil
}

func formatTicketNumber(year int, seq int64) string {
	return fmt.Sprintf("TKT-%d-%04d", year, seq)
}
