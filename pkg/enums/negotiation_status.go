package enums

import "fmt"

// NegotiationStatus is the per-deal negotiation plan state.
type NegotiationStatus string

const (
	NegotiationStatusIdle                NegotiationStatus = "idle"
	NegotiationStatusRecommendationReady NegotiationStatus = "recommendation-ready"
	NegotiationStatusInProgress          NegotiationStatus = "in-progress"
	NegotiationStatusCompleted           NegotiationStatus = "completed"
)

var validNegotiationStatuses = []NegotiationStatus{
	NegotiationStatusIdle,
	NegotiationStatusRecommendationReady,
	NegotiationStatusInProgress,
	NegotiationStatusCompleted,
}

// String implements fmt.Stringer.
func (n NegotiationStatus) String() string {
	return string(n)
}

// IsValid reports whether the value is known.
func (n NegotiationStatus) IsValid() bool {
	for _, candidate := range validNegotiationStatuses {
		if candidate == n {
			return true
		}
	}
	return false
}

// CanTransitionTo enforces the plan state machine: generate moves idle to
// recommendation-ready, approve moves recommendation-ready to in-progress,
// complete moves in-progress to completed, and reset returns any non-idle
// state to idle.
func (n NegotiationStatus) CanTransitionTo(target NegotiationStatus) bool {
	if !n.IsValid() || !target.IsValid() {
		return false
	}
	if target == NegotiationStatusIdle {
		return n != NegotiationStatusIdle
	}
	switch n {
	case NegotiationStatusIdle:
		return target == NegotiationStatusRecommendationReady
	case NegotiationStatusRecommendationReady:
		return target == NegotiationStatusInProgress
	case NegotiationStatusInProgress:
		return target == NegotiationStatusCompleted
	}
	return false
}

// ParseNegotiationStatus converts raw input into a NegotiationStatus.
func ParseNegotiationStatus(value string) (NegotiationStatus, error) {
	for _, candidate := range validNegotiationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid negotiation status %q", value)
}
