package enums

import "fmt"

// DealSource records how a deal entered the pipeline.
type DealSource string

const (
	DealSourceInbound  DealSource = "inbound"
	DealSourceOutbound DealSource = "outbound"
)

var validDealSources = []DealSource{
	DealSourceInbound,
	DealSourceOutbound,
}

// String implements fmt.Stringer.
func (d DealSource) String() string {
	return string(d)
}

// IsValid reports whether the value is known.
func (d DealSource) IsValid() bool {
	for _, candidate := range validDealSources {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDealSource converts raw input into a DealSource.
func ParseDealSource(value string) (DealSource, error) {
	for _, candidate := range validDealSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid deal source %q", value)
}
