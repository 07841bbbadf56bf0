package fee

import (
	"github.com/shopspring/decimal"
)

// OptionalCharge is a tagged optional fee: either absent or present with a label and amount.
// A present charge whose amount is exactly zero is billed as if it were absent.
type OptionalCharge struct {
	present bool
	label   string
	amount  decimal.Decimal
}

// Charge is a resolved fee that takes part in the invoice total
type Charge struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Absent returns a charge that was not supplied
func Absent() OptionalCharge {
	return OptionalCharge{}
}

// Present returns a supplied charge
func Present(label string, amount decimal.Decimal) OptionalCharge {
	return OptionalCharge{present: true, label: label, amount: amount}
}

// FromNullable builds a charge from a stored label and nullable amount.
// A NULL amount means the charge was never supplied.
func FromNullable(label string, amount decimal.NullDecimal) OptionalCharge {
	if !amount.Valid {
		return Absent()
	}
	return Present(label, amount.Decimal)
}

// Supplied reports whether a value was given, regardless of amount
func (o OptionalCharge) Supplied() bool {
	return o.present
}

// Get returns the charge when it counts towards the invoice.
// ok is false for absent charges and for supplied zero amounts.
func (o OptionalCharge) Get() (Charge, bool) {
	if !o.present || o.amount.IsZero() {
		return Charge{}, false
	}
	return Charge{Label: o.label, Amount: o.amount}, true
}

// Selection is the set of optional charges applied to one invoice
type Selection struct {
	Tiers      []OptionalCharge
	Additional OptionalCharge
}
