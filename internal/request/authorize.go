package request

import (
	"strings"

	"campusit/internal/common"
)

// Effect is a secondary mutation a transition carries with it. Effects are
// applied in the same transaction as the status write.
type Effect int

const (
	EffectStampApproval Effect = iota + 1
	EffectProvisionLab
	EffectActivateRequester
	EffectDeleteRequester
)

// Payload carries the transition fields the authorizer may need to validate.
type Payload struct {
	AssignedAdminID string
	LabCode         string
	LabCapacity     string
	LabLocation     string
}

// Authorize is the pure transition decision: given who is acting, what kind
// of request it is and the attempted status move, it either returns the side
// effects the transition requires or an error explaining the denial.
//
//   - Only the Dean decides PENDING -> APPROVED | DECLINED.
//   - Only an Admin advances APPROVED -> IN_PROGRESS and
//     APPROVED | IN_PROGRESS -> COMPLETED.
//   - Completing a LAB_SETUP request must carry lab_code, lab_capacity and
//     lab_location and provisions the lab.
//   - Declining an ACCOUNT_APPROVAL request deletes the originating account;
//     approving one activates it.
//
// Anything not covered above is denied.
func Authorize(actorRole common.Role, requestType, currentStatus, targetStatus string, payload Payload) ([]Effect, error) {
	if !validStatuses[targetStatus] {
		return nil, common.Validationf("unknown request status %q", targetStatus)
	}

	switch {
	case currentStatus == StatusPending && targetStatus == StatusApproved:
		if actorRole != common.RoleDean {
			return nil, deny(actorRole, currentStatus, targetStatus)
		}
		effects := []Effect{EffectStampApproval}
		if requestType == TypeAccountApproval {
			effects = append(effects, EffectActivateRequester)
		}
		return effects, nil

	case currentStatus == StatusPending && targetStatus == StatusDeclined:
		if actorRole != common.RoleDean {
			return nil, deny(actorRole, currentStatus, targetStatus)
		}
		if requestType == TypeAccountApproval {
			return []Effect{EffectDeleteRequester}, nil
		}
		return nil, nil

	case currentStatus == StatusApproved && targetStatus == StatusInProgress:
		if actorRole != common.RoleAdmin {
			return nil, deny(actorRole, currentStatus, targetStatus)
		}
		return nil, nil

	case (currentStatus == StatusApproved || currentStatus == StatusInProgress) && targetStatus == StatusCompleted:
		if actorRole != common.RoleAdmin {
			return nil, deny(actorRole, currentStatus, targetStatus)
		}
		if requestType == TypeLabSetup {
			if err := validateLabPayload(payload); err != nil {
				return nil, err
			}
			return []Effect{EffectProvisionLab}, nil
		}
		return nil, nil
	}

	return nil, deny(actorRole, currentStatus, targetStatus)
}

func validateLabPayload(p Payload) error {
	var missing []string
	if strings.TrimSpace(p.LabCode) == "" {
		missing = append(missing, "lab_code")
	}
	if strings.TrimSpace(p.LabCapacity) == "" {
		missing = append(missing, "lab_capacity")
	}
	if strings.TrimSpace(p.LabLocation) == "" {
		missing = append(missing, "lab_location")
	}
	if len(missing) > 0 {
		return common.Validationf("lab setup completion requires %s", strings.Join(missing, ", "))
	}
	return nil
}

func deny(role common.Role, current, target string) error {
	return common.Forbiddenf("role %s is not permitted to move a request from %s to %s", role, current, target)
}
