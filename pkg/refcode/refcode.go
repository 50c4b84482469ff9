// Package refcode generates the human-facing document codes (PO-..., SO-...,
// DO-..., MO-..., INV-..., RFQ-...). A code is the type prefix plus the
// current unix-millisecond timestamp; uniqueness is best effort, not
// enforced by a constraint.
package refcode

import (
	"fmt"
	"time"
)

const (
	PrefixPurchaseOrder      = "PO"
	PrefixSalesOrder         = "SO"
	PrefixDelivery           = "DO"
	PrefixManufacturingOrder = "MO"
	PrefixInvoice            = "INV"
	PrefixRFQ                = "RFQ"
)

// Generator produces document codes. The clock is injectable for tests.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt returns a generator backed by the provided clock.
func NewGeneratorAt(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// New returns "<prefix>-<unix millis>".
func (g *Generator) New(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.now().UnixMilli())
}
