package common

import "testing"

func TestCanonicalStageCoversDeclaredVocabularies(t *testing.T) {
	cases := map[string]Stage{
		// ticket raw statuses
		"SUBMITTED":   StagePending,
		"APPROVED":    StagePending,
		"QUEUED":      StageInProcess,
		"PROCESSING":  StageInProcess,
		"ASSIGNED":    StageInProcess,
		"IN_PROGRESS": StageInProcess,
		"RESOLVED":    StageResolved,
		"DEPLOYED":    StageResolved,
		"CLOSED":      StageClosed,
		// request raw statuses
		"PENDING":   StagePending,
		"DECLINED":  StageClosed,
		"COMPLETED": StageResolved,
	}

	for raw, want := range cases {
		if got := CanonicalStage(raw); got != want {
			t.Errorf("CanonicalStage(%s) = %s, want %s", raw, got, want)
		}
		// stable across calls
		if got := CanonicalStage(raw); got != want {
			t.Errorf("CanonicalStage(%s) unstable on repeat call: got %s", raw, got)
		}
	}
}

func TestCanonicalStagePassthroughOnUnrecognized(t *testing.T) {
	// Lenient by policy: unknown raw values are not an error, they pass
	// through unchanged and sort last.
	if got := CanonicalStage("ESCALATED"); got != Stage("ESCALATED") {
		t.Fatalf("expected passthrough, got %s", got)
	}
	if got := StageOrder("ESCALATED"); got != 4 {
		t.Fatalf("expected unknown status to sort last, got order %d", got)
	}
}

func TestStageOrder(t *testing.T) {
	if StageOrder("SUBMITTED") != 0 || StageOrder("QUEUED") != 1 ||
		StageOrder("DEPLOYED") != 2 || StageOrder("DECLINED") != 3 {
		t.Fatalf("stage ordering does not match PENDING < IN_PROCESS < RESOLVED < CLOSED")
	}
}

func TestIsTerminalStage(t *testing.T) {
	for _, raw := range []string{"RESOLVED", "DEPLOYED", "COMPLETED", "CLOSED", "DECLINED"} {
		if !IsTerminalStage(raw) {
			t.Errorf("expected %s to be terminal", raw)
		}
	}
	for _, raw := range []string{"SUBMITTED", "PENDING", "QUEUED", "IN_PROGRESS"} {
		if IsTerminalStage(raw) {
			t.Errorf("expected %s to be active", raw)
		}
	}
}
