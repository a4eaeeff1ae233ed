package report

import (
	"math"
	"sort"
	"time"

	"infogastos/internal/core"
)

type (
	// Row is one line of a categorical breakdown table.
	Row struct {
		Label      string  `json:"label"`
		Count      int     `json:"count"`
		Amount     float64 `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// TopGroup is the single highest-amount group of a breakdown.
	TopGroup struct {
		Label      string  `json:"label"`
		Amount     float64 `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// PeriodBucket is one entry of a time series. Records holds the member
	// records so rendering sinks can drill into a bucket.
	PeriodBucket struct {
		Period        string               `json:"period"`
		Count         int                  `json:"count"`
		Total         float64              `json:"total"`
		AverageTicket float64              `json:"average_ticket"`
		Records       []core.ExpenseRecord `json:"-"`
	}

	// KeyFunc extracts the grouping label from a record.
	KeyFunc func(core.ExpenseRecord) string

	// AmountFunc extracts the amount a record contributes to a group.
	AmountFunc func(core.ExpenseRecord) float64
)

// GrossAmount is the default AmountFunc for breakdown tables.
func GrossAmount(e core.ExpenseRecord) float64 { return e.GrossAmount }

// amountOrZero shields aggregation from malformed amounts: one bad record
// contributes zero instead of poisoning the whole table.
func amountOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// AggregateBy groups records by keyFn, accumulating count and amount per
// group and computing each group's percentage of the supplied total.
//
// Rows come back sorted descending by amount; ties keep first-seen order so
// results are deterministic. Empty keys fall back to core.UnspecifiedLabel.
// When total is not positive every percentage is zero.
func AggregateBy(records []core.ExpenseRecord, keyFn KeyFunc, amountFn AmountFunc, total float64) []Row {
	if len(records) == 0 {
		return nil
	}

	type group struct {
		count  int
		amount float64
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, rec := range records {
		label := keyFn(rec)
		if label == "" {
			label = core.UnspecifiedLabel
		}
		g, ok := groups[label]
		if !ok {
			g = &group{}
			groups[label] = g
			order = append(order, label)
		}
		g.count++
		g.amount += amountOrZero(amountFn(rec))
	}

	rows := make([]Row, 0, len(order))
	for _, label := range order {
		g := groups[label]
		pct := 0.0
		if total > 0 {
			pct = g.amount / total * 100
		}
		rows = append(rows, Row{Label: label, Count: g.count, Amount: g.amount, Percentage: pct})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Amount > rows[j].Amount })
	return rows
}

// Top returns only the highest-amount group, or an "N/A" sentinel when the
// input is empty.
func Top(records []core.ExpenseRecord, keyFn KeyFunc, amountFn AmountFunc, total float64) TopGroup {
	rows := AggregateBy(records, keyFn, amountFn, total)
	if len(rows) == 0 {
		return TopGroup{Label: "N/A"}
	}
	best := rows[0]
	return TopGroup{Label: best.Label, Amount: best.Amount, Percentage: best.Percentage}
}

// GroupByPeriod buckets records into a time series for the given granularity.
//
// Unlike the categorical tables, buckets are sorted ascending by period key
// (chronological, since keys are zero-padded) so series read left to right.
func GroupByPeriod(records []core.ExpenseRecord, g core.Granularity) []PeriodBucket {
	if len(records) == 0 {
		return nil
	}

	buckets := make(map[string]*PeriodBucket)
	for _, rec := range records {
		key := BucketKey(rec.Date, g)
		b, ok := buckets[key]
		if !ok {
			b = &PeriodBucket{Period: key}
			buckets[key] = b
		}
		b.Count++
		b.Total += amountOrZero(rec.GrossAmount)
		b.Records = append(b.Records, rec)
	}

	out := make([]PeriodBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.Count > 0 {
			b.AverageTicket = b.Total / float64(b.Count)
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// SumGross totals the gross amounts of a record set.
func SumGross(records []core.ExpenseRecord) float64 {
	var total float64
	for _, rec := range records {
		total += amountOrZero(rec.GrossAmount)
	}
	return total
}

// DateSpan returns the earliest and latest expense dates of a record set.
// ok is false when the set is empty or no record carries a valid date.
func DateSpan(records []core.ExpenseRecord) (min, max time.Time, ok bool) {
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		if !ok || rec.Date.Before(min) {
			min = rec.Date
		}
		if !ok || rec.Date.After(max) {
			max = rec.Date
		}
		ok = true
	}
	return min, max, ok
}
