package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculatePeriod(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		cadence   Cadence
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{
			name:      "monthly mid month",
			ref:       date(2025, time.March, 14),
			cadence:   CadenceMonthly,
			wantStart: date(2025, time.March, 1),
			wantEnd:   date(2025, time.March, 31),
			wantLabel: "March 2025",
		},
		{
			name:      "monthly february leap year",
			ref:       date(2024, time.February, 10),
			cadence:   CadenceMonthly,
			wantStart: date(2024, time.February, 1),
			wantEnd:   date(2024, time.February, 29),
			wantLabel: "February 2024",
		},
		{
			name:      "monthly february non leap year",
			ref:       date(2023, time.February, 28),
			cadence:   CadenceMonthly,
			wantStart: date(2023, time.February, 1),
			wantEnd:   date(2023, time.February, 28),
			wantLabel: "February 2023",
		},
		{
			name:      "monthly december",
			ref:       date(2025, time.December, 1),
			cadence:   CadenceMonthly,
			wantStart: date(2025, time.December, 1),
			wantEnd:   date(2025, time.December, 31),
			wantLabel: "December 2025",
		},
		{
			name:      "monthly thirty day month",
			ref:       date(2025, time.April, 30),
			cadence:   CadenceMonthly,
			wantStart: date(2025, time.April, 1),
			wantEnd:   date(2025, time.April, 30),
			wantLabel: "April 2025",
		},
		{
			name:      "first quarter",
			ref:       date(2025, time.February, 14),
			cadence:   CadenceQuarterly,
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.March, 31),
			wantLabel: "1st quarter 2025",
		},
		{
			name:      "second quarter",
			ref:       date(2025, time.June, 30),
			cadence:   CadenceQuarterly,
			wantStart: date(2025, time.April, 1),
			wantEnd:   date(2025, time.June, 30),
			wantLabel: "2nd quarter 2025",
		},
		{
			name:      "third quarter",
			ref:       date(2025, time.July, 1),
			cadence:   CadenceQuarterly,
			wantStart: date(2025, time.July, 1),
			wantEnd:   date(2025, time.September, 30),
			wantLabel: "3rd quarter 2025",
		},
		{
			name:      "fourth quarter",
			ref:       date(2025, time.November, 11),
			cadence:   CadenceQuarterly,
			wantStart: date(2025, time.October, 1),
			wantEnd:   date(2025, time.December, 31),
			wantLabel: "4th quarter 2025",
		},
		{
			name:      "first quarter leap year",
			ref:       date(2024, time.February, 29),
			cadence:   CadenceQuarterly,
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.March, 31),
			wantLabel: "1st quarter 2024",
		},
		{
			name:      "yearly",
			ref:       date(2025, time.August, 8),
			cadence:   CadenceYearly,
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.December, 31),
			wantLabel: "2025",
		},
		{
			name:      "unknown cadence",
			ref:       date(2025, time.March, 14),
			cadence:   Cadence("weekly"),
			wantStart: date(2025, time.March, 14),
			wantEnd:   date(2025, time.March, 14),
			wantLabel: "2025-03-14",
		},
		{
			name:      "empty cadence",
			ref:       date(2025, time.January, 5),
			cadence:   Cadence(""),
			wantStart: date(2025, time.January, 5),
			wantEnd:   date(2025, time.January, 5),
			wantLabel: "2025-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePeriod(tt.ref, tt.cadence)
			assert.True(t, got.Start.Equal(tt.wantStart), "start: got %v, want %v", got.Start, tt.wantStart)
			assert.True(t, got.End.Equal(tt.wantEnd), "end: got %v, want %v", got.End, tt.wantEnd)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestCalculatePeriod_ContainsReference(t *testing.T) {
	cadences := []Cadence{CadenceMonthly, CadenceQuarterly, CadenceYearly}
	start := date(2023, time.January, 1)

	for day := 0; day < 3*366; day++ {
		ref := start.AddDate(0, 0, day)
		for _, c := range cadences {
			p := CalculatePeriod(ref, c)
			if ref.Before(p.Start) || ref.After(p.End) {
				t.Fatalf("%s period %v..%v does not contain %v", c, p.Start, p.End, ref)
			}
			// the day after the end must fall in a different period
			if next := CalculatePeriod(p.End.AddDate(0, 0, 1), c); next.Start.Equal(p.Start) {
				t.Fatalf("%s period %v..%v does not end on the last day", c, p.Start, p.End)
			}
		}
	}
}

func TestCalculatePeriod_IgnoresClock(t *testing.T) {
	ref := time.Date(2025, time.March, 31, 23, 59, 0, 0, time.FixedZone("EST", -5*60*60))
	p := CalculatePeriod(ref, CadenceMonthly)
	assert.Equal(t, "March 2025", p.Label)
	assert.Equal(t, "03/01/2025 - 03/31/2025", p.DatesLabel())
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 101: "st", 111: "th",
	}
	for n, want := range tests {
		assert.Equal(t, want, OrdinalSuffix(n), "n=%d", n)
	}
}
