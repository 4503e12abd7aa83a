package activity

import (
	"testing"

	"campusit/internal/common"

	"github.com/google/uuid"
)

func TestFilterOwnEntriesAlwaysVisible(t *testing.T) {
	me := uuid.New()
	f := Filter{UserID: me, Role: common.RoleLabIncharge}

	e := &ActivityLog{UserID: me, Entity: EntityUser, Details: "Account Approval declined"}
	if !f.Matches(e) {
		t.Fatal("authors must always see their own entries, even redacted ones")
	}
}

func TestFilterDeanAndAdminSeeEverything(t *testing.T) {
	other := &ActivityLog{UserID: uuid.New(), Entity: EntityUser, Details: "(HOD) Account Approval"}
	for _, role := range []common.Role{common.RoleDean, common.RoleAdmin} {
		f := Filter{UserID: uuid.New(), Role: role}
		if !f.Matches(other) {
			t.Errorf("%s should see every entry", role)
		}
	}
}

func TestFilterHODDepartmentScopeWithRedaction(t *testing.T) {
	deptID := uuid.New()
	otherDept := uuid.New()
	f := Filter{UserID: uuid.New(), Role: common.RoleHOD, DepartmentID: &deptID}

	cases := []struct {
		name  string
		entry ActivityLog
		want  bool
	}{
		{"own department visible", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityTicket, Details: "Updated ticket TKT-2026-0001 status to QUEUED"}, true},
		{"other department hidden", ActivityLog{UserID: uuid.New(), DepartmentID: &otherDept, Entity: EntityTicket, Details: "Updated ticket"}, false},
		{"unscoped entry hidden", ActivityLog{UserID: uuid.New(), Entity: EntityTicket, Details: "Updated ticket"}, false},
		{"HOD marker redacted", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityRequest, Details: "Request filed by Dr. Chen (HOD)"}, false},
		{"account approval redacted", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityRequest, Details: "Account Approval declined"}, false},
	}

	for _, tc := range cases {
		if got := f.Matches(&tc.entry); got != tc.want {
			t.Errorf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterLabInchargeScope(t *testing.T) {
	labID := uuid.New()
	deptID := uuid.New()
	f := Filter{UserID: uuid.New(), Role: common.RoleLabIncharge, LabID: &labID, DepartmentID: &deptID}

	cases := []struct {
		name  string
		entry ActivityLog
		want  bool
	}{
		{"lab-scoped ticket visible", ActivityLog{UserID: uuid.New(), LabID: &labID, Entity: EntityTicket, Details: "Updated ticket"}, true},
		{"department-scoped asset visible", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityAsset, Details: "Imported asset"}, true},
		{"non-workflow entity hidden", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityDepartment, Details: "Updated department"}, false},
		{"account approval redacted", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityRequest, Details: "Account Approval pending"}, false},
		{"registration redacted", ActivityLog{UserID: uuid.New(), DepartmentID: &deptID, Entity: EntityRequest, Details: "New account registered: jane@example.com"}, false},
		{"out of scope hidden", ActivityLog{UserID: uuid.New(), Entity: EntityTicket, Details: "Updated ticket"}, false},
	}

	for _, tc := range cases {
		if got := f.Matches(&tc.entry); got != tc.want {
			t.Errorf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}
