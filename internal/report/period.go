package report

import "infogastos/internal/core"

// PreviousPeriod derives the preceding date range of identical length, ending
// the day before the current range starts. The one-day gap keeps the two
// periods from overlapping or touching: a 30-day range maps to the 30 days
// ending the day before From.
func PreviousPeriod(rng core.DateRange) core.DateRange {
	diffDays := rng.Days() - 1
	to := rng.From.AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -diffDays)
	return core.DateRange{From: from, To: to}
}

// Variance is the percentage change from previous to current.
//
// When the previous total is zero and the current is positive it yields 100
// ("fully new" growth). Consumers that want a nullable comparison should use
// KPISet.VariationVsPrevious, which reports nil whenever previous <= 0.
func Variance(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}
