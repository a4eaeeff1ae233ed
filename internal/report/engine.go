// Package report implements the expense report aggregation engine: calendar
// bucketing, dimension breakdowns with percentage-of-total, period-over-period
// KPIs, and the façade that composes them into a full report.
//
// Everything here is a pure function over the supplied record sets. The engine
// holds no state between calls; identical inputs produce identical outputs.
package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"infogastos/internal/core"
)

type (
	// RecordSource supplies expense records for a date range and filter set.
	// Implementations own query execution, retries, and timeouts.
	RecordSource interface {
		ListByRange(ctx context.Context, rng core.DateRange, f core.DimensionFilters) ([]core.ExpenseRecord, error)
	}

	// Config selects what a report covers.
	Config struct {
		Range       core.DateRange
		Granularity core.Granularity
		Filters     core.DimensionFilters
	}

	// Result is the full derived report: KPIs plus every table the rendering
	// sinks consume. All amounts are raw numbers; display formatting belongs
	// to the sinks.
	Result struct {
		Range         core.DateRange   `json:"-"`
		Granularity   core.Granularity `json:"granularity"`
		KPIs          KPISet           `json:"kpis"`
		Periods       []PeriodBucket   `json:"periods"`
		ByExpenseType []Row            `json:"by_expense_type"`
		ByResponsible []Row            `json:"by_responsible"`
		ByClient      []Row            `json:"by_client"`
		ByProvince    []Row            `json:"by_province"`
		VAT           VATSummary       `json:"vat"`
	}

	// Engine fetches the two period record sets and derives the report.
	Engine struct {
		source RecordSource
	}
)

func NewEngine(source RecordSource) *Engine {
	return &Engine{source: source}
}

// Generate fetches the current and previous period record sets concurrently
// and computes the full report. The two fetches are independent, but a report
// needs both: if either fails the context is cancelled and the whole call
// fails, since a single-period result would be inconsistent.
func (e *Engine) Generate(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Range.Validate(); err != nil {
		return nil, fmt.Errorf("report range: %w", err)
	}
	if err := cfg.Granularity.Validate(); err != nil {
		return nil, fmt.Errorf("report granularity: %w", err)
	}

	prevRange := PreviousPeriod(cfg.Range)

	var current, previous []core.ExpenseRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = e.source.ListByRange(gctx, cfg.Range, cfg.Filters)
		if err != nil {
			return fmt.Errorf("fetch current period: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		previous, err = e.source.ListByRange(gctx, prevRange, cfg.Filters)
		if err != nil {
			return fmt.Errorf("fetch previous period: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compute(current, previous, cfg), nil
}

// Compute derives the report tables and KPIs from already-fetched record
// sets. Nil or empty sets produce zero-valued results, never an error.
func Compute(current, previous []core.ExpenseRecord, cfg Config) *Result {
	total := SumGross(current)
	return &Result{
		Range:         cfg.Range,
		Granularity:   cfg.Granularity,
		KPIs:          ComputeKPIs(current, previous, cfg.Range),
		Periods:       GroupByPeriod(current, cfg.Granularity),
		ByExpenseType: AggregateBy(current, func(e core.ExpenseRecord) string { return e.ExpenseType }, GrossAmount, total),
		ByResponsible: AggregateBy(current, func(e core.ExpenseRecord) string { return e.Responsible }, GrossAmount, total),
		ByClient:      AggregateBy(current, func(e core.ExpenseRecord) string { return e.Client }, GrossAmount, total),
		ByProvince:    AggregateBy(current, func(e core.ExpenseRecord) string { return e.Province }, GrossAmount, total),
		VAT:           ComputeVATSummary(current),
	}
}
