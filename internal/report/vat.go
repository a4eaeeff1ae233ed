package report

import (
	"sort"

	"infogastos/internal/core"
)

type (
	// VATLine is the net/VAT/gross total for one expense type in one currency.
	VATLine struct {
		ExpenseType string  `json:"expense_type"`
		Currency    string  `json:"currency"`
		Net         float64 `json:"net"`
		VAT         float64 `json:"vat"`
		Gross       float64 `json:"gross"`
	}

	// VATSummary is the fiscal breakdown table: one line per expense type and
	// currency, plus grand totals in the report currency.
	VATSummary struct {
		Lines      []VATLine `json:"lines"`
		TotalNet   float64   `json:"total_net"`
		TotalVAT   float64   `json:"total_vat"`
		TotalGross float64   `json:"total_gross"`
		Currency   string    `json:"currency"`
	}
)

// ComputeVATSummary aggregates net/VAT/gross totals per expense type and
// currency. Lines are sorted by type name, then currency, so the table is
// stable across runs. Grand totals sum every line regardless of currency,
// labeled with the report currency.
func ComputeVATSummary(records []core.ExpenseRecord) VATSummary {
	summary := VATSummary{Currency: core.DefaultCurrency}
	if len(records) == 0 {
		return summary
	}

	type key struct{ expenseType, currency string }
	lines := make(map[key]*VATLine)

	for _, rec := range records {
		t := rec.ExpenseType
		if t == "" {
			t = core.UnspecifiedLabel
		}
		c := rec.Currency
		if c == "" {
			c = core.DefaultCurrency
		}
		k := key{t, c}
		line, ok := lines[k]
		if !ok {
			line = &VATLine{ExpenseType: t, Currency: c}
			lines[k] = line
		}
		gross := amountOrZero(rec.GrossAmount)
		vat := amountOrZero(rec.VATAmount)
		line.Gross += gross
		line.VAT += vat
		line.Net += gross - vat
	}

	for _, line := range lines {
		summary.Lines = append(summary.Lines, *line)
		summary.TotalNet += line.Net
		summary.TotalVAT += line.VAT
		summary.TotalGross += line.Gross
	}
	sort.Slice(summary.Lines, func(i, j int) bool {
		a, b := summary.Lines[i], summary.Lines[j]
		if a.ExpenseType != b.ExpenseType {
			return a.ExpenseType < b.ExpenseType
		}
		return a.Currency < b.Currency
	})
	return summary
}
