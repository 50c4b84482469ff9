package enums

import "fmt"

// RFQStatus tracks a request for quotation from draft to conversion.
type RFQStatus string

const (
	RFQStatusDraft     RFQStatus = "Draft"
	RFQStatusSent      RFQStatus = "Sent"
	RFQStatusConverted RFQStatus = "Converted"
	RFQStatusCancelled RFQStatus = "Cancelled"
)

var validRFQStatuses = []RFQStatus{
	RFQStatusDraft,
	RFQStatusSent,
	RFQStatusConverted,
	RFQStatusCancelled,
}

// String implements fmt.Stringer.
func (r RFQStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RFQStatus.
func (r RFQStatus) IsValid() bool {
	for _, candidate := range validRFQStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRFQStatus converts raw input into an RFQStatus.
func ParseRFQStatus(value string) (RFQStatus, error) {
	for _, candidate := range validRFQStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rfq status %q", value)
}
