package report

import (
	"fmt"
	"time"

	"infogastos/internal/core"
)

// BucketKey maps a calendar date to its period key for the given granularity.
//
// Daily keys are plain ISO dates (2024-03-01). Weekly keys use ISO-8601 week
// numbering (2025-W01): weeks start on Monday and the week's year is the year
// of its Thursday, so Dec 31 can fall in week 1 of the next year and Jan 1 in
// week 52/53 of the previous one. Monthly keys are 2024-03.
//
// Keys are zero-padded so lexicographic order is chronological order.
func BucketKey(date time.Time, g core.Granularity) string {
	switch g {
	case core.Weekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case core.Monthly:
		return fmt.Sprintf("%d-%02d", date.Year(), int(date.Month()))
	default:
		return date.Format("2006-01-02")
	}
}
