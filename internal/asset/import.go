package asset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Bulk CSV import reconciliation.
//
// Rows carry loosely-specified department and lab references (name, id or
// code) which are resolved against a snapshot of the reference sets fetched
// once at batch start. Rows are processed independently: one row failing
// never aborts or rolls back the rest. The summary reports counts plus a
// deduplicated set of failure categories rather than a per-row trace.

// Fixed 12-column row schema, header row discarded.
const (
	colAssetNumber = 0
	colProcessor   = 1
	colRAM         = 2
	colHDD         = 3
	colLabRef      = 4
	colStatus      = 5
	colName        = 6
	colType        = 7
	colBrand       = 8
	colModel       = 9
	colMACAddress  = 10
	colDeptRef     = 11
)

const minPopulatedColumns = 5

const errMissingDepartment = "Missing valid Department ID in column 12"

// DeptRef / LabRef are the reconciliation snapshot entries.
type DeptRef struct {
	ID   uuid.UUID
	Name string
	Code string
}

type LabRef struct {
	ID   uuid.UUID
	Name string
	Code string
}

// RefSnapshot is the batch-local view of the reference sets. It is fetched
// once before the first row and never re-read mid-batch.
type RefSnapshot struct {
	Departments []DeptRef
	Labs        []LabRef
}

// ImportSummary - {successCount, failCount, errorCategories}; skipped rows
// (blank or under-populated) count in neither bucket.
type ImportSummary struct {
	SuccessCount    int      `json:"success_count"`
	FailCount       int      `json:"fail_count"`
	ErrorCategories []string `json:"error_categories"`
}

// reconcileRows runs the batch against a snapshot and a row sink. The sink is
// injected so the engine itself stays free of storage concerns.
func reconcileRows(csvText string, snap RefSnapshot, defaultDepartmentID uuid.UUID, create func(*Asset) error) ImportSummary {
	summary := ImportSummary{}
	categories := make(map[string]struct{})

	lines := strings.Split(csvText, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := splitRow(line)
		if populatedColumns(cols) < minPopulatedColumns {
			continue // accepted gap, neither success nor failure
		}

		deptID, ok := resolveDepartment(field(cols, colDeptRef), snap.Departments, defaultDepartmentID)
		if !ok {
			summary.FailCount++
			categories[errMissingDepartment] = struct{}{}
			continue
		}

		a := Asset{
			AssetNumber:  field(cols, colAssetNumber),
			Processor:    field(cols, colProcessor),
			RAM:          field(cols, colRAM),
			HDD:          field(cols, colHDD),
			Status:       normalizeStatus(field(cols, colStatus)),
			Name:         field(cols, colName),
			Type:         normalizeType(field(cols, colType)),
			Brand:        field(cols, colBrand),
			Model:        field(cols, colModel),
			MACAddress:   field(cols, colMACAddress),
			Category:     "Computing",
			DepartmentID: deptID,
			LabID:        resolveLab(field(cols, colLabRef), snap.Labs),
		}
		if a.Name == "" {
			a.Name = fmt.Sprintf("System %s", a.AssetNumber)
		}
		if a.Brand == "" {
			a.Brand = "Generic"
		}
		if a.Model == "" {
			a.Model = "Generic"
		}

		if err := create(&a); err != nil {
			summary.FailCount++
			categories[err.Error()] = struct{}{}
			continue
		}
		summary.SuccessCount++
	}

	summary.ErrorCategories = make([]string, 0, len(categories))
	for category := range categories {
		summary.ErrorCategories = append(summary.ErrorCategories, category)
	}
	sort.Strings(summary.ErrorCategories)

	return summary
}

// splitRow trims each field and strips surrounding double quotes. Embedded
// commas and escapes are out of scope for this schema.
func splitRow(line string) []string {
	cols := strings.Split(line, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
		cols[i] = strings.TrimPrefix(cols[i], `"`)
		cols[i] = strings.TrimSuffix(cols[i], `"`)
	}
	return cols
}

func populatedColumns(cols []string) int {
	n := 0
	for _, c := range cols {
		if c != "" {
			n++
		}
	}
	return n
}

func field(cols []string, idx int) string {
	if idx < len(cols) {
		return cols[idx]
	}
	return ""
}

// resolveDepartment matches the reference against name, id or code (first
// match wins), falls back to the batch default, and reports failure only when
// neither resolves.
func resolveDepartment(ref string, departments []DeptRef, defaultID uuid.UUID) (uuid.UUID, bool) {
	if ref != "" {
		for _, d := range departments {
			if d.Name == ref || d.ID.String() == ref || d.Code == ref {
				return d.ID, true
			}
		}
	}
	if defaultID != uuid.Nil {
		return defaultID, true
	}
	if len(departments) > 0 {
		return departments[0].ID, true
	}
	return uuid.Nil, false
}

// resolveLab is the same match but non-fatal: an unresolved lab reference
// leaves the asset's lab unset.
func resolveLab(ref string, labs []LabRef) *uuid.UUID {
	if ref == "" {
		return nil
	}
	for _, l := range labs {
		if l.Code == ref || l.Name == ref || l.ID.String() == ref {
			id := l.ID
			return &id
		}
	}
	return nil
}

// normalizeStatus maps free status text to the closed set, defaulting to
// ACTIVE for anything unrecognized (lenient by policy).
func normalizeStatus(raw string) string {
	status := strings.ToUpper(strings.TrimSpace(raw))
	if validStatuses[status] {
		return status
	}
	return StatusActive
}

func normalizeType(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return TypeDesktop
	}
	return t
}
