package enums

import "fmt"

// ContractStatus describes the lifecycle of a contract. Transitions are
// monotonic: new -> in_progress -> terminated, with terminated terminal.
type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

var validContractStatuses = []ContractStatus{
	ContractStatusNew,
	ContractStatusInProgress,
	ContractStatusTerminated,
}

// ActiveContractStatuses are the statuses a contract can hold while work on it
// is still billable.
var ActiveContractStatuses = []ContractStatus{
	ContractStatusNew,
	ContractStatusInProgress,
}

// IsValid reports whether the value matches the canonical contract status enum.
func (c ContractStatus) IsValid() bool {
	for _, candidate := range validContractStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsActive reports whether the status counts as active (non terminated).
func (c ContractStatus) IsActive() bool {
	return c == ContractStatusNew || c == ContractStatusInProgress
}

// CanTransitionTo reports whether the status may move to next without skipping
// or reversing a lifecycle step.
func (c ContractStatus) CanTransitionTo(next ContractStatus) bool {
	switch c {
	case ContractStatusNew:
		return next == ContractStatusInProgress
	case ContractStatusInProgress:
		return next == ContractStatusTerminated
	default:
		return false
	}
}

// ParseContractStatus converts the raw string to ContractStatus.
func ParseContractStatus(value string) (ContractStatus, error) {
	for _, candidate := range validContractStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contract status %q", value)
}
