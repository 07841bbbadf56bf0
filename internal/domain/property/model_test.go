package property

import (
	"testing"

	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFees(t *testing.T) {
	props := []*Property{
		{ID: "prop_1", Address: "1 Oak St", FeeAmount: decimal.NewNullDecimal(decimal.NewFromInt(100))},
		{ID: "prop_2", Address: "2 Oak St"},
		nil,
		{ID: "prop_3", Address: "3 Oak St", FeeAmount: decimal.NewNullDecimal(decimal.Zero)},
	}

	fees := Fees(props)
	require.Len(t, fees, 2)
	assert.Equal(t, "1 Oak St", fees[0].Label)
	assert.True(t, fees[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "3 Oak St", fees[1].Label)
	assert.True(t, fees[1].Amount.IsZero())

	assert.Empty(t, Fees(nil))
}

func TestProperty_Validate(t *testing.T) {
	p := &Property{CustomerID: "cust_1", Address: "1 Oak St"}
	assert.NoError(t, p.Validate())

	p.Address = ""
	assert.True(t, ierr.IsValidation(p.Validate()))

	p = &Property{Address: "1 Oak St"}
	assert.True(t, ierr.IsValidation(p.Validate()))
}
