package enums

import "fmt"

// DealStage tracks a sponsorship deal through the pipeline.
type DealStage string

const (
	DealStageNew         DealStage = "new"
	DealStageNegotiation DealStage = "negotiation"
	DealStageClosedWon   DealStage = "closed_won"
	DealStageClosedLost  DealStage = "closed_lost"
)

var validDealStages = []DealStage{
	DealStageNew,
	DealStageNegotiation,
	DealStageClosedWon,
	DealStageClosedLost,
}

// String implements fmt.Stringer.
func (d DealStage) String() string {
	return string(d)
}

// IsValid reports whether the value is known.
func (d DealStage) IsValid() bool {
	for _, candidate := range validDealStages {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsClosed reports whether the stage is terminal.
func (d DealStage) IsClosed() bool {
	return d == DealStageClosedWon || d == DealStageClosedLost
}

// CanTransitionTo reports whether the pipeline allows moving to the target
// stage. Closed deals stay closed; everything else moves forward or closes.
func (d DealStage) CanTransitionTo(target DealStage) bool {
	if !d.IsValid() || !target.IsValid() || d == target {
		return false
	}
	if d.IsClosed() {
		return false
	}
	switch d {
	case DealStageNew:
		return target == DealStageNegotiation || target.IsClosed()
	case DealStageNegotiation:
		return target.IsClosed()
	}
	return false
}

// ParseDealStage converts raw input into a DealStage.
func ParseDealStage(value string) (DealStage, error) {
	for _, candidate := range validDealStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deal stage %q", value)
}
