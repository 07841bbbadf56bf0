package fee

import (
	"testing"

	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		input     Input
		wantTotal string
		wantKinds []LineKind
	}{
		{
			name:      "base only",
			input:     Input{BaseLabel: "Management Fee", BaseRate: d("250")},
			wantTotal: "250",
			wantKinds: []LineKind{LineKindBase},
		},
		{
			name: "all components",
			input: Input{
				BaseLabel: "Management Fee",
				BaseRate:  d("250"),
				Tiers: []OptionalCharge{
					Present("Landscaping", d("40.25")),
					Present("Pool", d("15")),
				},
				Additional: Present("Key replacement", d("12.50")),
				PropertyFees: []PropertyFee{
					{Label: "1 Oak St", Amount: d("100")},
					{Label: "2 Oak St", Amount: d("0.005")},
				},
			},
			wantTotal: "417.755",
			wantKinds: []LineKind{LineKindBase, LineKindTier, LineKindTier, LineKindAdditional, LineKindProperty, LineKindProperty},
		},
		{
			name: "zero tier excluded",
			input: Input{
				BaseRate: d("100"),
				Tiers: []OptionalCharge{
					Present("Landscaping", d("0")),
					Present("Pool", d("20")),
				},
			},
			wantTotal: "120",
			wantKinds: []LineKind{LineKindBase, LineKindTier},
		},
		{
			name: "absent tiers and additional",
			input: Input{
				BaseRate:   d("100"),
				Tiers:      []OptionalCharge{Absent(), Absent()},
				Additional: Absent(),
			},
			wantTotal: "100",
			wantKinds: []LineKind{LineKindBase},
		},
		{
			name: "zero additional excluded",
			input: Input{
				BaseRate:   d("100"),
				Additional: Present("Nothing", decimal.Zero),
			},
			wantTotal: "100",
			wantKinds: []LineKind{LineKindBase},
		},
		{
			name: "negative tier is present",
			input: Input{
				BaseRate: d("100"),
				Tiers:    []OptionalCharge{Present("Discount", d("-25"))},
			},
			wantTotal: "75",
			wantKinds: []LineKind{LineKindBase, LineKindTier},
		},
		{
			name: "zero property fee still itemized",
			input: Input{
				BaseRate:     d("100"),
				PropertyFees: []PropertyFee{{Label: "Lot", Amount: decimal.Zero}},
			},
			wantTotal: "100",
			wantKinds: []LineKind{LineKindBase, LineKindProperty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(tt.input)
			require.NoError(t, err)
			assert.True(t, d(tt.wantTotal).Equal(got.Total), "total: got %s, want %s", got.Total, tt.wantTotal)

			kinds := make([]LineKind, 0, len(got.Lines))
			sum := decimal.Zero
			for _, l := range got.Lines {
				kinds = append(kinds, l.Kind)
				sum = sum.Add(l.Amount)
			}
			assert.Equal(t, tt.wantKinds, kinds)
			assert.True(t, sum.Equal(got.Total), "lines must add up to the total")
		})
	}
}

func TestAggregate_TooManyTiers(t *testing.T) {
	_, err := Aggregate(Input{
		BaseRate: d("1"),
		Tiers:    []OptionalCharge{Absent(), Absent(), Absent(), Absent()},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBreakdown_TierAccess(t *testing.T) {
	b, err := Aggregate(Input{
		BaseRate: d("10"),
		Tiers: []OptionalCharge{
			Present("Zero", decimal.Zero),
			Present("Pool", d("5")),
		},
		Additional:   Present("Keys", d("3")),
		PropertyFees: []PropertyFee{{Label: "A", Amount: d("1")}, {Label: "B", Amount: d("2")}},
	})
	require.NoError(t, err)

	_, ok := b.Tier(0)
	assert.False(t, ok, "zero tier must read as absent")

	c, ok := b.Tier(1)
	require.True(t, ok)
	assert.Equal(t, "Pool", c.Label)

	_, ok = b.Tier(2)
	assert.False(t, ok)
	_, ok = b.Tier(-1)
	assert.False(t, ok)

	add, ok := b.AdditionalCharge()
	require.True(t, ok)
	assert.True(t, d("3").Equal(add.Amount))

	assert.True(t, d("3").Equal(b.PropertyTotal()))
	assert.True(t, d("21").Equal(b.Total))
}

func TestFromNullable(t *testing.T) {
	assert.False(t, FromNullable("x", decimal.NullDecimal{}).Supplied())

	zero := FromNullable("x", decimal.NewNullDecimal(decimal.Zero))
	assert.True(t, zero.Supplied())
	_, ok := zero.Get()
	assert.False(t, ok)

	c, ok := FromNullable("x", decimal.NewNullDecimal(d("4"))).Get()
	assert.True(t, ok)
	assert.Equal(t, "x", c.Label)
}
