package asset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campusit/internal/activity"
	"campusit/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	audit    *activity.Logger
	archiver BatchArchiver
}

// BatchArchiver stores raw import payloads for later triage. Optional;
// archiving is best-effort and never fails an import.
type BatchArchiver interface {
	ArchiveImport(ctx context.Context, key string, payload []byte) error
}

func NewService(db *gorm.DB, audit *activity.Logger, archiver BatchArchiver) *Service {
	return &Service{db: db, audit: audit, archiver: archiver}
}

// =============================================
// 1. CRUD
// =============================================

func (s *Service) List(filter ListFilter) ([]Asset, int64, error) {
	query := s.db.Model(&Asset{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("asset_number ILIKE ? OR name ILIKE ? OR serial_number ILIKE ?", pattern, pattern, pattern)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.LabID != nil {
		query = query.Where("lab_id = ?", *filter.LabID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", strings.ToUpper(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, common.Storef(err, "failed to count assets")
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	var assets []Asset
	if err := query.Order("asset_number asc").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&assets).Error; err != nil {
		return nil, 0, common.Storef(err, "failed to list assets")
	}

	return assets, total, nil
}

func (s *Service) Create(actorID uuid.UUID, req *CreateAssetRequest) (*Asset, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return nil, common.Validationf("invalid department_id")
	}

	a := Asset{
		AssetNumber:  req.AssetNumber,
		Name:         req.Name,
		Type:         strings.ToUpper(req.Type),
		Category:     req.Category,
		Status:       normalizeStatus(req.Status),
		DepartmentID: departmentID,
		Processor:    req.Processor,
		RAM:          req.RAM,
		HDD:          req.HDD,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		MACAddress:   req.MACAddress,
		Location:     req.Location,
	}
	if req.LabID != "" {
		id, err := uuid.Parse(req.LabID)
		if err != nil {
			return nil, common.Validationf("invalid lab_id")
		}
		a.LabID = &id
	}

	if err := s.db.Create(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "23505") {
			return nil, common.Conflictf("an asset with number %s already exists", a.AssetNumber)
		}
		return nil, common.Storef(err, "failed to create asset")
	}

	s.audit.Append(activity.Entry{
		UserID:       actorID,
		Action:       "CREATE",
		Entity:       activity.EntityAsset,
		EntityID:     a.ID.String(),
		Details:      fmt.Sprintf("Registered asset %s (%s)", a.AssetNumber, a.Type),
		DepartmentID: &a.DepartmentID,
		LabID:        a.LabID,
	})

	return &a, nil
}

// ReassignLab moves an asset to another lab (or out of any lab).
func (s *Service) ReassignLab(id uuid.UUID, labID *uuid.UUID) (*Asset, error) {
	var a Asset
	if err := s.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("asset %s not found", id)
		}
		return nil, common.Storef(err, "failed to load asset")
	}

	if err := s.db.Model(&a).Update("lab_id", labID).Error; err != nil {
		return nil, common.Storef(err, "failed to reassign asset")
	}
	a.LabID = labID
	return &a, nil
}

// Delete removes a single asset (Dean action; bulk removal happens through
// department decommission).
func (s *Service) Delete(id uuid.UUID) error {
	result := s.db.Where("id = ?", id).Delete(&Asset{})
	if result.Error != nil {
		return common.Storef(result.Error, "failed to delete asset")
	}
	if result.RowsAffected == 0 {
		return common.NotFoundf("asset %s not found", id)
	}
	return nil
}

// =============================================
// 2. BULK CSV IMPORT
// =============================================

// ImportCSV runs the reconciliation engine over an uploaded CSV payload.
// Reference sets are snapshotted once for the whole batch; each row is then
// written independently with no batch transaction. The raw payload is
// archived best-effort before processing.
func (s *Service) ImportCSV(ctx context.Context, actorID uuid.UUID, defaultDepartmentID uuid.UUID, csvText string) (*ImportSummary, error) {
	snap, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}

	if s.archiver != nil {
		key := fmt.Sprintf("imports/%s-%s.csv", time.Now().UTC().Format("20060102T150405"), actorID)
		if err := s.archiver.ArchiveImport(ctx, key, []byte(csvText)); err != nil {
			log.Printf("⚠️ Failed to archive import batch %s: %v", key, err)
		}
	}

	summary := reconcileRows(csvText, snap, defaultDepartmentID, func(a *Asset) error {
		if err := s.db.Create(a).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "23505") {
				return fmt.Errorf("duplicate asset number")
			}
			return err
		}
		return nil
	})

	s.audit.Append(activity.Entry{
		UserID:   actorID,
		Action:   "IMPORT",
		Entity:   activity.EntityAsset,
		EntityID: "bulk",
		Details: fmt.Sprintf("Imported assets from CSV: %d succeeded, %d failed",
			summary.SuccessCount, summary.FailCount),
	})

	return &summary, nil
}

// loadSnapshot reads just the reference columns straight off the tables; the
// importer only needs ids and the name/code match keys.
func (s *Service) loadSnapshot() (RefSnapshot, error) {
	var snap RefSnapshot
	if err := s.db.Table("departments").Select("id, name, code").
		Order("created_at asc").Scan(&snap.Departments).Error; err != nil {
		return RefSnapshot{}, common.Storef(err, "failed to snapshot departments")
	}
	if err := s.db.Table("labs").Select("id, name, code").
		Scan(&snap.Labs).Error; err != nil {
		return RefSnapshot{}, common.Storef(err, "failed to snapshot labs")
	}
	return snap, nil
}
