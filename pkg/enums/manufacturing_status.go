package enums

import "fmt"

// ManufacturingStatus tracks the lifecycle of a manufacturing order.
type ManufacturingStatus string

const (
	ManufacturingStatusDraft     ManufacturingStatus = "Draft"
	ManufacturingStatusDone      ManufacturingStatus = "Done"
	ManufacturingStatusCancelled ManufacturingStatus = "Cancelled"
)

var validManufacturingStatuses = []ManufacturingStatus{
	ManufacturingStatusDraft,
	ManufacturingStatusDone,
	ManufacturingStatusCancelled,
}

// String implements fmt.Stringer.
func (m ManufacturingStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ManufacturingStatus.
func (m ManufacturingStatus) IsValid() bool {
	for _, candidate := range validManufacturingStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseManufacturingStatus converts raw input into a ManufacturingStatus.
func ParseManufacturingStatus(value string) (ManufacturingStatus, error) {
	for _, candidate := range validManufacturingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid manufacturing status %q", value)
}
