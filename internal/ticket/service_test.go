package ticket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAdvanceUpdatesResolvedAtStamping(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		status  string
		stamped bool
	}{
		{StatusSubmitted, false},
		{StatusApproved, false},
		{StatusQueued, false},
		{StatusProcessing, false},
		{StatusAssigned, false},
		{StatusInProgress, false},
		{StatusResolved, true},
		{StatusDeployed, true},
		{StatusClosed, false},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			updates := advanceUpdates(&AdvanceTicketRequest{Status: tc.status}, nil, now)

			if updates["status"] != tc.status {
				t.Fatalf("status not carried: %v", updates)
			}
			stamped, ok := updates["resolved_at"]
			if ok != tc.stamped {
				t.Fatalf("resolved_at presence = %v, want %v", ok, tc.stamped)
			}
			if tc.stamped && stamped != now {
				t.Fatalf("resolved_at = %v, want %v", stamped, now)
			}
		})
	}
}

func TestAdvanceUpdatesOptionalColumns(t *testing.T) {
	adminID := uuid.New()
	updates := advanceUpdates(&AdvanceTicketRequest{
		Status:     StatusProcessing,
		Resolution: "swapped the monitor",
	}, &adminID, time.Now())

	if updates["resolution"] != "swapped the monitor" {
		t.Errorf("resolution not carried: %v", updates)
	}
	if updates["assigned_to_id"] != adminID {
		t.Errorf("assigned_to_id not carried: %v", updates)
	}

	// absent inputs must not write their columns
	updates = advanceUpdates(&AdvanceTicketRequest{Status: StatusQueued}, nil, time.Now())
	if _, ok := updates["resolution"]; ok {
		t.Error("empty resolution should not be written")
	}
	if _, ok := updates["assigned_to_id"]; ok {
		t.Error("nil assignee should not be written")
	}
}

func TestFormatTicketNumber(t *testing.T) {
	if got := formatTicketNumber(2026, 1); got != "TKT-2026-0001" {
		t.Errorf("got %q", got)
	}
	if got := formatTicketNumber(2026, 12345); got != "TKT-2026-12345" {
		t.Errorf("sequence must not truncate: got %q", got)
	}
}
