package asset

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

const importHeader = "Asset Number,Processor,RAM,HDD,Lab,Status,Name,Type,Brand,Model,MAC Address,Department"

func testSnapshot() (RefSnapshot, uuid.UUID, uuid.UUID) {
	deptID := uuid.New()
	labID := uuid.New()
	snap := RefSnapshot{
		Departments: []DeptRef{
			{ID: deptID, Name: "Computer Science & Engineering", Code: "CSE"},
			{ID: uuid.New(), Name: "Mechanical Engineering", Code: "MECH"},
		},
		Labs: []LabRef{
			{ID: labID, Name: "Programming Lab 1", Code: "CSE-LAB-301"},
		},
	}
	return snap, deptID, labID
}

func collect(created *[]Asset) func(*Asset) error {
	return func(a *Asset) error {
		*created = append(*created, *a)
		return nil
	}
}

func TestReconcileResolvesDepartmentAndLab(t *testing.T) {
	snap, deptID, labID := testSnapshot()
	csv := importHeader + "\n" +
		`"CSE-LAB303-PC01","Intel i5","8GB","256GB SSD","CSE-LAB-301","active","Test PC","DESKTOP","Dell","3020","AA:BB:CC:DD:EE:FF","CSE"`

	var created []Asset
	summary := reconcileRows(csv, snap, uuid.Nil, collect(&created))

	if summary.SuccessCount != 1 || summary.FailCount != 0 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}
	a := created[0]
	if a.DepartmentID != deptID {
		t.Errorf("department not resolved by code: got %s", a.DepartmentID)
	}
	if a.LabID == nil || *a.LabID != labID {
		t.Errorf("lab not resolved by code: got %v", a.LabID)
	}
	if a.Status != StatusActive {
		t.Errorf("status %q not normalized to ACTIVE", a.Status)
	}
	if a.AssetNumber != "CSE-LAB303-PC01" || a.MACAddress != "AA:BB:CC:DD:EE:FF" {
		t.Errorf("quoted fields not stripped: %+v", a)
	}
}

func TestReconcileUnresolvedLabIsNonFatal(t *testing.T) {
	snap, _, _ := testSnapshot()
	csv := importHeader + "\n" +
		`"CSE-LAB303-PC02","Intel i5","8GB","256GB SSD","UNKNOWN-LAB","active","Test PC","DESKTOP","Dell","3020","AA:BB:CC:DD:EE:01","CSE"`

	var created []Asset
	summary := reconcileRows(csv, snap, uuid.Nil, collect(&created))

	if summary.SuccessCount != 1 || summary.FailCount != 0 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}
	if created[0].LabID != nil {
		t.Errorf("unresolved lab should leave lab unset, got %v", created[0].LabID)
	}
}

func TestReconcileUnresolvedDepartmentFallsBack(t *testing.T) {
	snap, _, _ := testSnapshot()
	csv := importHeader + "\n" +
		`PC-01,Intel i5,8GB,256GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:02,UNKNOWN-DEPT`

	// explicit default wins
	explicit := uuid.New()
	var created []Asset
	summary := reconcileRows(csv, snap, explicit, collect(&created))
	if summary.SuccessCount != 1 {
		t.Fatalf("summary = %+v, want success via explicit default", summary)
	}
	if created[0].DepartmentID != explicit {
		t.Errorf("expected explicit default department, got %s", created[0].DepartmentID)
	}

	// no explicit default: first department in the snapshot
	created = nil
	summary = reconcileRows(csv, snap, uuid.Nil, collect(&created))
	if summary.SuccessCount != 1 {
		t.Fatalf("summary = %+v, want success via first department", summary)
	}
	if created[0].DepartmentID != snap.Departments[0].ID {
		t.Errorf("expected first snapshot department, got %s", created[0].DepartmentID)
	}
}

func TestReconcileNoDefaultDepartmentFailsRow(t *testing.T) {
	csv := importHeader + "\n" +
		`PC-01,Intel i5,8GB,256GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:03,UNKNOWN-DEPT`

	summary := reconcileRows(csv, RefSnapshot{}, uuid.Nil, func(*Asset) error {
		t.Fatal("row without a resolvable department must not reach the store")
		return nil
	})

	if summary.FailCount != 1 || summary.SuccessCount != 0 {
		t.Fatalf("summary = %+v, want 1 failure", summary)
	}
	if len(summary.ErrorCategories) != 1 || !strings.Contains(summary.ErrorCategories[0], "Missing valid Department ID") {
		t.Fatalf("error categories = %v", summary.ErrorCategories)
	}
}

func TestReconcileSkipsHeaderBlankAndSparseRows(t *testing.T) {
	snap, _, _ := testSnapshot()
	csv := strings.Join([]string{
		importHeader,
		"",
		"PC-01,Intel i5,8GB,256GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:04,CSE",
		"PC-02,,,,",      // sparse, skipped
		"only,two,cells", // sparse, skipped
		"   ",
		"PC-03,Intel i7,16GB,512GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:05,CSE",
	}, "\n")

	var created []Asset
	summary := reconcileRows(csv, snap, uuid.Nil, collect(&created))

	// K=4 non-blank data rows, F=2 sparse: success+fail must equal K-F
	if summary.SuccessCount+summary.FailCount != 2 {
		t.Fatalf("skipped rows leaked into counts: %+v", summary)
	}
	if summary.SuccessCount != 2 {
		t.Fatalf("summary = %+v, want 2 successes", summary)
	}
}

func TestReconcileRowFailureDoesNotAbortBatch(t *testing.T) {
	snap, _, _ := testSnapshot()
	csv := strings.Join([]string{
		importHeader,
		"PC-01,Intel i5,8GB,256GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:06,CSE",
		"PC-01,Intel i5,8GB,256GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:07,CSE",
		"PC-02,Intel i5,8GB,256GB SSD,,active,Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:08,CSE",
	}, "\n")

	seen := map[string]bool{}
	summary := reconcileRows(csv, snap, uuid.Nil, func(a *Asset) error {
		if seen[a.AssetNumber] {
			return errors.New("duplicate asset number")
		}
		seen[a.AssetNumber] = true
		return nil
	})

	if summary.SuccessCount != 2 || summary.FailCount != 1 {
		t.Fatalf("summary = %+v, want 2 successes and 1 failure", summary)
	}
	if len(summary.ErrorCategories) != 1 || summary.ErrorCategories[0] != "duplicate asset number" {
		t.Fatalf("error categories = %v, want deduplicated single category", summary.ErrorCategories)
	}
}

func TestReconcileStatusNormalization(t *testing.T) {
	snap, _, _ := testSnapshot()
	rows := []struct {
		raw  string
		want string
	}{
		{"active", StatusActive},
		{"Under_Maintenance", StatusUnderMaintenance},
		{"DAMAGED", StatusDamaged},
		{"retired", StatusRetired},
		{"broken", StatusActive}, // lenient default
		{"", StatusActive},
	}

	for _, tc := range rows {
		csv := importHeader + "\n" +
			"PC-X,Intel i5,8GB,256GB SSD,," + tc.raw + ",Test PC,DESKTOP,Dell,3020,AA:BB:CC:DD:EE:09,CSE"
		var created []Asset
		reconcileRows(csv, snap, uuid.Nil, collect(&created))
		if len(created) != 1 || created[0].Status != tc.want {
			t.Errorf("status %q: got %+v, want %s", tc.raw, created, tc.want)
		}
	}
}

func TestReconcileDefaultsForOptionalColumns(t *testing.T) {
	snap, _, _ := testSnapshot()
	csv := importHeader + "\n" +
		"PC-09,Intel i5,8GB,256GB SSD,,active,,,,,AA:BB:CC:DD:EE:10,CSE"

	var created []Asset
	reconcileRows(csv, snap, uuid.Nil, collect(&created))
	if len(created) != 1 {
		t.Fatalf("expected 1 created asset")
	}
	a := created[0]
	if a.Name != "System PC-09" {
		t.Errorf("name default: got %q", a.Name)
	}
	if a.Type != TypeDesktop {
		t.Errorf("type default: got %q", a.Type)
	}
	if a.Brand != "Generic" || a.Model != "Generic" {
		t.Errorf("brand/model defaults: got %q/%q", a.Brand, a.Model)
	}
}
