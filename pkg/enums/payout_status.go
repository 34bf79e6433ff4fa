package enums

import "fmt"

// PayoutStatus tracks upcoming payout milestones.
type PayoutStatus string

const (
	PayoutStatusPending       PayoutStatus = "pending"
	PayoutStatusEscrowPending PayoutStatus = "escrow_pending"
	PayoutStatusHeldInEscrow  PayoutStatus = "held_in_escrow"
	PayoutStatusReleased      PayoutStatus = "released"
)

var validPayoutStatuses = []PayoutStatus{
	PayoutStatusPending,
	PayoutStatusEscrowPending,
	PayoutStatusHeldInEscrow,
	PayoutStatusReleased,
}

// String implements fmt.Stringer.
func (p PayoutStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p PayoutStatus) IsValid() bool {
	for _, candidate := range validPayoutStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePayoutStatus converts raw input into a PayoutStatus.
func ParsePayoutStatus(value string) (PayoutStatus, error) {
	for _, candidate := range validPayoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payout status %q", value)
}
