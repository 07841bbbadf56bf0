package types

import (
	"fmt"
	"time"
)

// Period is the billed time range of an invoice
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// DatesLabel renders the range as "MM/DD/YYYY - MM/DD/YYYY"
func (p Period) DatesLabel() string {
	return fmt.Sprintf("%s - %s", FormatDisplayDate(p.Start), FormatDisplayDate(p.End))
}

// CalculatePeriod derives the billed range and its human label from a reference date.
//
//	monthly   -> whole calendar month, "March 2025"
//	quarterly -> whole calendar quarter, "3rd quarter 2025"
//	yearly    -> whole calendar year, "2025"
//
// Any other cadence yields a single-day period on ref labelled with its ISO date.
func CalculatePeriod(ref time.Time, cadence Cadence) Period {
	ref = CivilDate(ref)
	year, month, _ := ref.Date()

	switch cadence {
	case CadenceMonthly:
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return Period{
			Start: start,
			End:   lastDayOfMonth(start),
			Label: fmt.Sprintf("%s %d", month.String(), year),
		}
	case CadenceQuarterly:
		quarter := QuarterOf(month)
		startMonth := time.Month(3*(quarter-1) + 1)
		start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
		endMonth := time.Date(year, startMonth+2, 1, 0, 0, 0, 0, time.UTC)
		return Period{
			Start: start,
			End:   lastDayOfMonth(endMonth),
			Label: fmt.Sprintf("%d%s quarter %d", quarter, OrdinalSuffix(quarter), year),
		}
	case CadenceYearly:
		return Period{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
			Label: fmt.Sprintf("%d", year),
		}
	default:
		return Period{
			Start: ref,
			End:   ref,
			Label: FormatISODate(ref),
		}
	}
}

// QuarterOf returns the 1-based calendar quarter of month
func QuarterOf(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// OrdinalSuffix returns the English ordinal suffix for n (1st, 2nd, 3rd, 4th, 11th, 21st...)
func OrdinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// lastDayOfMonth takes the first day of a month and returns its last day
// by stepping to the first of the following month and back one day.
func lastDayOfMonth(firstOfMonth time.Time) time.Time {
	return firstOfMonth.AddDate(0, 1, 0).AddDate(0, 0, -1)
}
