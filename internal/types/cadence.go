package types

import (
	"strings"
	"time"
)

// Cadence is the billing frequency of a customer. Values outside the known
// set are stored as-is and billed with a single-day period that never advances.
type Cadence string

const (
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceYearly    Cadence = "yearly"
)

// Fixed day counts used to move a customer's next bill date forward after an
// invoice is issued. These approximate calendar months, quarters and years and
// drift over many cycles.
const (
	AdvanceDaysMonthly   = 30
	AdvanceDaysQuarterly = 90
	AdvanceDaysYearly    = 365
)

// NormalizeCadence trims and lower-cases user input
func NormalizeCadence(s string) Cadence {
	return Cadence(strings.ToLower(strings.TrimSpace(s)))
}

func (c Cadence) String() string {
	return string(c)
}

// IsKnown reports whether the cadence has a defined period and advance rule
func (c Cadence) IsKnown() bool {
	_, ok := c.AdvanceDays()
	return ok
}

// AdvanceDays returns the fixed number of days the next bill date moves by.
// ok is false for cadences without an advance rule.
func (c Cadence) AdvanceDays() (days int, ok bool) {
	switch c {
	case CadenceMonthly:
		return AdvanceDaysMonthly, true
	case CadenceQuarterly:
		return AdvanceDaysQuarterly, true
	case CadenceYearly:
		return AdvanceDaysYearly, true
	default:
		return 0, false
	}
}

// NextBillDate returns the due date following current. For unknown cadences
// current is returned unchanged with ok=false so callers can surface it.
func (c Cadence) NextBillDate(current time.Time) (next time.Time, ok bool) {
	days, ok := c.AdvanceDays()
	if !ok {
		return current, false
	}
	return current.AddDate(0, 0, days), true
}
