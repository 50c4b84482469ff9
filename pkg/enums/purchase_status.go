package enums

import "fmt"

// PurchaseStatus tracks the lifecycle of a purchase order.
type PurchaseStatus string

const (
	PurchaseStatusDraft    PurchaseStatus = "Draft"
	PurchaseStatusOrdered  PurchaseStatus = "Ordered"
	PurchaseStatusReceived PurchaseStatus = "Received"
)

var validPurchaseStatuses = []PurchaseStatus{
	PurchaseStatusDraft,
	PurchaseStatusOrdered,
	PurchaseStatusReceived,
}

// String implements fmt.Stringer.
func (p PurchaseStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PurchaseStatus.
func (p PurchaseStatus) IsValid() bool {
	for _, candidate := range validPurchaseStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status forbids any further edit.
func (p PurchaseStatus) IsTerminal() bool {
	return p == PurchaseStatusReceived
}

// ParsePurchaseStatus converts raw input into a PurchaseStatus.
func ParsePurchaseStatus(value string) (PurchaseStatus, error) {
	for _, candidate := range validPurchaseStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase status %q", value)
}
