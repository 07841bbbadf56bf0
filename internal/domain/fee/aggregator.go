package fee

import (
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MaxTiers is the number of optional named fee tiers an invoice can carry on top of the base fee
const MaxTiers = 3

type LineKind string

const (
	LineKindBase       LineKind = "base"
	LineKindTier       LineKind = "tier"
	LineKindAdditional LineKind = "additional"
	LineKindProperty   LineKind = "property"
)

// LineItem is one itemized component of an invoice total
type LineItem struct {
	Kind   LineKind        `json:"kind"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// PropertyFee is the recurring fee of one property owned by the customer
type PropertyFee struct {
	Label  string
	Amount decimal.Decimal
}

// Input carries everything the total depends on. Callers that want customer
// defaults for tiers must merge them in before calling Aggregate.
type Input struct {
	BaseLabel    string
	BaseRate     decimal.Decimal
	Tiers        []OptionalCharge
	Additional   OptionalCharge
	PropertyFees []PropertyFee
}

// Breakdown is the itemized result of Aggregate
type Breakdown struct {
	Base       Charge
	Lines      []LineItem
	Total      decimal.Decimal
	tiers      []OptionalCharge
	additional OptionalCharge
}

// Aggregate computes the invoice total as
//
//	base + present tiers + additional (if present) + all property fees
//
// Zero-amount tiers and additional fees are dropped from both the total and the lines.
// Property fees are always included. Nothing is rounded.
func Aggregate(in Input) (*Breakdown, error) {
	if len(in.Tiers) > MaxTiers {
		return nil, ierr.NewErrorf("too many fee tiers: %d", len(in.Tiers)).
			WithHintf("At most %d fee tiers are supported", MaxTiers).
			WithReportableDetails(map[string]any{
				"tiers": len(in.Tiers),
			}).
			Mark(ierr.ErrValidation)
	}

	b := &Breakdown{
		Base:       Charge{Label: in.BaseLabel, Amount: in.BaseRate},
		Total:      in.BaseRate,
		tiers:      in.Tiers,
		additional: in.Additional,
	}
	b.Lines = append(b.Lines, LineItem{Kind: LineKindBase, Label: in.BaseLabel, Amount: in.BaseRate})

	for _, t := range in.Tiers {
		if c, ok := t.Get(); ok {
			b.add(LineKindTier, c)
		}
	}

	if c, ok := in.Additional.Get(); ok {
		b.add(LineKindAdditional, c)
	}

	for _, p := range in.PropertyFees {
		b.add(LineKindProperty, Charge(p))
	}

	return b, nil
}

func (b *Breakdown) add(kind LineKind, c Charge) {
	b.Lines = append(b.Lines, LineItem{Kind: kind, Label: c.Label, Amount: c.Amount})
	b.Total = b.Total.Add(c.Amount)
}

// Tier returns the i-th tier (0-based) if it counts towards the total
func (b *Breakdown) Tier(i int) (Charge, bool) {
	if i < 0 || i >= len(b.tiers) {
		return Charge{}, false
	}
	return b.tiers[i].Get()
}

// AdditionalCharge returns the one-off additional fee if it counts towards the total
func (b *Breakdown) AdditionalCharge() (Charge, bool) {
	return b.additional.Get()
}

// PropertyTotal sums the property fee lines
func (b *Breakdown) PropertyTotal() decimal.Decimal {
	return lo.Reduce(b.Lines, func(acc decimal.Decimal, l LineItem, _ int) decimal.Decimal {
		if l.Kind != LineKindProperty {
			return acc
		}
		return acc.Add(l.Amount)
	}, decimal.Zero)
}
