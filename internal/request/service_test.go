package request

import (
	"strings"
	"testing"
)

func TestAdvanceDetailsNamesSideEffects(t *testing.T) {
	cases := []struct {
		name    string
		status  string
		effects []Effect
		labCode string
		want    []string
	}{
		{
			name:    "plain status change",
			status:  StatusInProgress,
			effects: nil,
			want:    []string{"Updated request REQ-2026-0007 status to IN_PROGRESS"},
		},
		{
			name:    "approval stamp",
			status:  StatusApproved,
			effects: []Effect{EffectStampApproval},
			want:    []string{"status to APPROVED", "stamped approval"},
		},
		{
			name:    "account approval approved",
			status:  StatusApproved,
			effects: []Effect{EffectStampApproval, EffectActivateRequester},
			want:    []string{"stamped approval", "activated requester account"},
		},
		{
			name:    "account approval declined",
			status:  StatusDeclined,
			effects: []Effect{EffectDeleteRequester},
			want:    []string{"status to DECLINED", "deleted requester account"},
		},
		{
			name:    "lab setup completed",
			status:  StatusCompleted,
			effects: []Effect{EffectProvisionLab},
			labCode: "CSE-LAB-303",
			want:    []string{"status to COMPLETED", "provisioned lab CSE-LAB-303"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := advanceDetails("REQ-2026-0007", tc.status, tc.effects, tc.labCode)
			for _, fragment := range tc.want {
				if !strings.Contains(details, fragment) {
					t.Errorf("details %q missing %q", details, fragment)
				}
			}
		})
	}
}

func TestAdvanceDetailsDeclineOmitsUnappliedEffects(t *testing.T) {
	details := advanceDetails("REQ-2026-0001", StatusDeclined, nil, "")
	if strings.Contains(details, "deleted requester") || strings.Contains(details, "provisioned lab") {
		t.Fatalf("plain decline must not claim side effects: %q", details)
	}
}

func TestFormatRequestNumber(t *testing.T) {
	if got := formatRequestNumber(2026, 2); got != "REQ-2026-0002" {
		t.Errorf("got %q", got)
	}
	if got := formatRequestNumber(2026, 12345); got != "REQ-2026-12345" {
		t.Errorf("sequence must not truncate: got %q", got)
	}
}
