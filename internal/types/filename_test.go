package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceFileName(t *testing.T) {
	tests := []struct {
		name    string
		period  string
		address string
		want    string
	}{
		{
			name:    "drops house number",
			period:  "March 2025",
			address: "123 Main St",
			want:    "Invoice_March_2025_Main_St.docx",
		},
		{
			name:    "single token address kept whole",
			period:  "March 2025",
			address: "Somewhere",
			want:    "Invoice_March_2025_Somewhere.docx",
		},
		{
			name:    "slashes become dashes",
			period:  "2025",
			address: "12 A/B Street",
			want:    "Invoice_2025_A-B_Street.docx",
		},
		{
			name:    "quarter label",
			period:  "3rd quarter 2025",
			address: "9 Elm Ave",
			want:    "Invoice_3rd_quarter_2025_Elm_Ave.docx",
		},
		{
			name:    "iso label for unknown cadence",
			period:  "2025-03-14",
			address: "7 Oak Rd",
			want:    "Invoice_2025-03-14_Oak_Rd.docx",
		},
		{
			name:    "surrounding whitespace ignored",
			period:  "2025",
			address: "  55   Long  Lane ",
			want:    "Invoice_2025_Long__Lane.docx",
		},
		{
			name:    "empty address",
			period:  "2025",
			address: "",
			want:    "Invoice_2025_.docx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InvoiceFileName(tt.period, tt.address))
		})
	}
}
