package request

import (
	"testing"

	"campusit/internal/common"
)

var labPayload = Payload{LabCode: "CSE-LAB-303", LabCapacity: "50", LabLocation: "Block A, 3rd Floor"}

func TestAuthorizeDeanApproval(t *testing.T) {
	effects, err := Authorize(common.RoleDean, TypeNewSystem, StatusPending, StatusApproved, Payload{AssignedAdminID: "some-admin"})
	if err != nil {
		t.Fatalf("dean approval should be allowed: %v", err)
	}
	if len(effects) != 1 || effects[0] != EffectStampApproval {
		t.Fatalf("expected approval stamp effect, got %v", effects)
	}

	// assigned admin may also be supplied later
	if _, err := Authorize(common.RoleDean, TypeNewSystem, StatusPending, StatusApproved, Payload{}); err != nil {
		t.Fatalf("approval without assigned admin should still be allowed: %v", err)
	}
}

func TestAuthorizeDeanDecline(t *testing.T) {
	effects, err := Authorize(common.RoleDean, TypeHardwareRepair, StatusPending, StatusDeclined, Payload{})
	if err != nil {
		t.Fatalf("dean decline should be allowed: %v", err)
	}
	if len(effects) != 0 {
		t.Fatalf("plain decline carries no effects, got %v", effects)
	}
}

func TestAuthorizeAccountApprovalEffects(t *testing.T) {
	effects, err := Authorize(common.RoleDean, TypeAccountApproval, StatusPending, StatusDeclined, Payload{})
	if err != nil {
		t.Fatalf("declining account approval should be allowed: %v", err)
	}
	if len(effects) != 1 || effects[0] != EffectDeleteRequester {
		t.Fatalf("declined account approval must delete the requester, got %v", effects)
	}

	effects, err = Authorize(common.RoleDean, TypeAccountApproval, StatusPending, StatusApproved, Payload{})
	if err != nil {
		t.Fatalf("approving account approval should be allowed: %v", err)
	}
	for _, e := range effects {
		if e == EffectProvisionLab {
			t.Fatal("account approval must never provision a lab")
		}
	}
}

func TestAuthorizeAdminProgression(t *testing.T) {
	if _, err := Authorize(common.RoleAdmin, TypeNewSystem, StatusApproved, StatusInProgress, Payload{}); err != nil {
		t.Fatalf("admin APPROVED->IN_PROGRESS should be allowed: %v", err)
	}
	if _, err := Authorize(common.RoleAdmin, TypeNewSystem, StatusApproved, StatusCompleted, Payload{}); err != nil {
		t.Fatalf("admin APPROVED->COMPLETED should be allowed: %v", err)
	}
	if _, err := Authorize(common.RoleAdmin, TypeNewSystem, StatusInProgress, StatusCompleted, Payload{}); err != nil {
		t.Fatalf("admin IN_PROGRESS->COMPLETED should be allowed: %v", err)
	}
}

func TestAuthorizeLabSetupCompletion(t *testing.T) {
	effects, err := Authorize(common.RoleAdmin, TypeLabSetup, StatusInProgress, StatusCompleted, labPayload)
	if err != nil {
		t.Fatalf("lab setup completion with full payload should be allowed: %v", err)
	}
	if len(effects) != 1 || effects[0] != EffectProvisionLab {
		t.Fatalf("expected lab provisioning effect, got %v", effects)
	}
}

func TestAuthorizeLabSetupCompletionMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload Payload
	}{
		{"missing lab_code", Payload{LabCapacity: "50", LabLocation: "Block A"}},
		{"missing lab_capacity", Payload{LabCode: "CSE-LAB-303", LabLocation: "Block A"}},
		{"missing lab_location", Payload{LabCode: "CSE-LAB-303", LabCapacity: "50"}},
		{"empty payload", Payload{}},
	}
	for _, tc := range cases {
		_, err := Authorize(common.RoleAdmin, TypeLabSetup, StatusApproved, StatusCompleted, tc.payload)
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if common.GetCode(err) != common.CodeValidation {
			t.Errorf("%s: expected validation error, got %s (%v)", tc.name, common.GetCode(err), err)
		}
	}
}

func TestAuthorizeUncoveredPairsAreForbidden(t *testing.T) {
	roles := []common.Role{common.RoleDean, common.RoleAdmin, common.RoleHOD, common.RoleLabIncharge}
	statuses := []string{StatusPending, StatusApproved, StatusDeclined, StatusInProgress, StatusCompleted, StatusClosed}

	allowed := func(role common.Role, current, target string) bool {
		switch {
		case role == common.RoleDean && current == StatusPending && (target == StatusApproved || target == StatusDeclined):
			return true
		case role == common.RoleAdmin && current == StatusApproved && target == StatusInProgress:
			return true
		case role == common.RoleAdmin && (current == StatusApproved || current == StatusInProgress) && target == StatusCompleted:
			return true
		}
		return false
	}

	for _, role := range roles {
		for _, current := range statuses {
			for _, target := range statuses {
				_, err := Authorize(role, TypeNewSystem, current, target, labPayload)
				if allowed(role, current, target) {
					if err != nil {
						t.Errorf("(%s, %s->%s) should be allowed: %v", role, current, target, err)
					}
					continue
				}
				if err == nil {
					t.Errorf("(%s, %s->%s) should be forbidden", role, current, target)
					continue
				}
				if common.GetCode(err) != common.CodeAuthorization {
					t.Errorf("(%s, %s->%s) expected authorization denial, got %s", role, current, target, common.GetCode(err))
				}
			}
		}
	}
}

func TestAuthorizeCompletedIsTerminalForLabSetup(t *testing.T) {
	// Re-completing a completed LAB_SETUP request is denied outright, so the
	// lab provisioning effect can fire at most once per lifecycle.
	_, err := Authorize(common.RoleAdmin, TypeLabSetup, StatusCompleted, StatusCompleted, labPayload)
	if err == nil {
		t.Fatal("COMPLETED->COMPLETED must be denied")
	}
	if common.GetCode(err) != common.CodeAuthorization {
		t.Fatalf("expected authorization denial, got %s", common.GetCode(err))
	}
}

func TestAuthorizeUnknownTargetStatus(t *testing.T) {
	_, err := Authorize(common.RoleDean, TypeNewSystem, StatusPending, "ESCALATED", Payload{})
	if err == nil || common.GetCode(err) != common.CodeValidation {
		t.Fatalf("unknown target status must be a validation error, got %v", err)
	}
}
