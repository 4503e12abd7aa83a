package common

// The per-entity status vocabularies (ticket vs request) collapse into four
// canonical lifecycle stages used for ordering and active/history filtering.

type Stage string

const (
	StagePending   Stage = "PENDING"
	StageInProcess Stage = "IN_PROCESS"
	StageResolved  Stage = "RESOLVED"
	StageClosed    Stage = "CLOSED"
)

var stageByRawStatus = map[string]Stage{
	"SUBMITTED":   StagePending,
	"PENDING":     StagePending,
	"APPROVED":    StagePending,
	"PROCESSING":  StageInProcess,
	"QUEUED":      StageInProcess,
	"ASSIGNED":    StageInProcess,
	"IN_PROGRESS": StageInProcess,
	"RESOLVED":    StageResolved,
	"DEPLOYED":    StageResolved,
	"COMPLETED":   StageResolved,
	"CLOSED":      StageClosed,
	"DECLINED":    StageClosed,
}

// CanonicalStage maps a raw entity status to its unified stage. Unrecognized
// raw values pass through unchanged so new statuses never break display
// logic; callers that need the closed set must validate separately.
func CanonicalStage(rawStatus string) Stage {
	if stage, ok := stageByRawStatus[rawStatus]; ok {
		return stage
	}
	return Stage(rawStatus)
}

// StageOrder gives list ordering: PENDING and IN_PROCESS queues first,
// unrecognized stages last. Within a stage callers tie-break newest-first.
func StageOrder(rawStatus string) int {
	switch CanonicalStage(rawStatus) {
	case StagePending:
		return 0
	case StageInProcess:
		return 1
	case StageResolved:
		return 2
	case StageClosed:
		return 3
	default:
		return 4
	}
}

// IsTerminalStage reports whether the raw status sits in a history stage.
func IsTerminalStage(rawStatus string) bool {
	s := CanonicalStage(rawStatus)
	return s == StageResolved || s == StageClosed
}
