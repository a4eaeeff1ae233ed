package report

import "infogastos/internal/core"

type (
	// KPISet holds the report's top-line indicators.
	KPISet struct {
		TotalAmount  float64 `json:"total_amount"`
		AverageDaily float64 `json:"average_daily"`
		// VariationVsPrevious is nil when the previous period total is not
		// positive: a comparison against nothing is not meaningful.
		VariationVsPrevious *float64   `json:"variation_vs_previous"`
		TopExpenseType      TopGroup   `json:"top_expense_type"`
		TopClient           TopGroup   `json:"top_client"`
		TopSpender          TopSpender `json:"top_spender"`
		// ObservedFrom/ObservedTo are the earliest and latest expense dates
		// actually present, which can be narrower than the requested range.
		ObservedFrom string `json:"observed_from,omitempty"`
		ObservedTo   string `json:"observed_to,omitempty"`
	}

	// TopSpender is the responsible with the highest gross spend, counted
	// over records in the report currency only.
	TopSpender struct {
		Label    string  `json:"label"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
)

// ComputeKPIs derives the top-line indicators from the current and previous
// period record sets. Nil or empty sets yield zero-valued KPIs.
func ComputeKPIs(current, previous []core.ExpenseRecord, rng core.DateRange) KPISet {
	total := SumGross(current)
	prevTotal := SumGross(previous)

	days := rng.Days()
	if days < 1 {
		days = 1
	}

	kpis := KPISet{
		TotalAmount:    total,
		AverageDaily:   total / float64(days),
		TopExpenseType: Top(current, func(e core.ExpenseRecord) string { return e.ExpenseType }, GrossAmount, total),
		TopClient:      Top(current, func(e core.ExpenseRecord) string { return e.Client }, GrossAmount, total),
		TopSpender:     computeTopSpender(current, core.DefaultCurrency),
	}

	if prevTotal > 0 {
		v := Variance(total, prevTotal)
		kpis.VariationVsPrevious = &v
	}

	if min, max, ok := DateSpan(current); ok {
		kpis.ObservedFrom = min.Format("2006-01-02")
		kpis.ObservedTo = max.Format("2006-01-02")
	}
	return kpis
}

// computeTopSpender finds the responsible with the highest gross spend among
// records in the given currency. Mixed-currency sets are not summed together;
// records in other currencies are simply ignored here.
func computeTopSpender(records []core.ExpenseRecord, currency string) TopSpender {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, rec := range records {
		c := rec.Currency
		if c == "" {
			c = core.DefaultCurrency
		}
		if c != currency {
			continue
		}
		label := rec.Responsible
		if label == "" {
			label = core.UnspecifiedLabel
		}
		if _, ok := totals[label]; !ok {
			order = append(order, label)
		}
		totals[label] += amountOrZero(rec.GrossAmount)
	}

	top := TopSpender{Label: "N/A", Currency: currency}
	max := -1.0
	for _, label := range order {
		if totals[label] > max {
			max = totals[label]
			top.Label = label
			top.Amount = totals[label]
		}
	}
	return top
}
