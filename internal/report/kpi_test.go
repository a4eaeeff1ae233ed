package report

import (
	"testing"

	"infogastos/internal/core"
)

func fullRec(date, expenseType, client, responsible, currency string, gross float64) core.ExpenseRecord {
	r := rec(date, expenseType, gross)
	r.Client = client
	r.Responsible = responsible
	r.Currency = currency
	return r
}

func TestComputeKPIsTotals(t *testing.T) {
	rng := core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 10)}
	current := []core.ExpenseRecord{
		fullRec("2024-03-01", "Combustible", "ACME", "Ana", "ARS", 100),
		fullRec("2024-03-05", "Peajes", "ACME", "Bruno", "ARS", 50),
	}
	previous := []core.ExpenseRecord{
		fullRec("2024-02-20", "Combustible", "ACME", "Ana", "ARS", 100),
	}

	kpis := ComputeKPIs(current, previous, rng)

	if kpis.TotalAmount != 150 {
		t.Fatalf("expected total 150, got %f", kpis.TotalAmount)
	}
	if !almostEqual(kpis.AverageDaily, 15) {
		t.Fatalf("expected average daily 15 over 10 days, got %f", kpis.AverageDaily)
	}
	if kpis.VariationVsPrevious == nil {
		t.Fatalf("expected variation, got nil")
	}
	if !almostEqual(*kpis.VariationVsPrevious, 50) {
		t.Fatalf("expected +50%%, got %f", *kpis.VariationVsPrevious)
	}
	if kpis.TopExpenseType.Label != "Combustible" {
		t.Fatalf("unexpected top expense type: %+v", kpis.TopExpenseType)
	}
	if kpis.TopClient.Label != "ACME" || !almostEqual(kpis.TopClient.Percentage, 100) {
		t.Fatalf("unexpected top client: %+v", kpis.TopClient)
	}
	if kpis.ObservedFrom != "2024-03-01" || kpis.ObservedTo != "2024-03-05" {
		t.Fatalf("unexpected observed span: %s to %s", kpis.ObservedFrom, kpis.ObservedTo)
	}
}

func TestComputeKPIsNilVariationOnZeroPrevious(t *testing.T) {
	rng := core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)}
	current := []core.ExpenseRecord{
		fullRec("2024-03-01", "Combustible", "ACME", "Ana", "ARS", 100),
	}

	// Even with positive current spend, a zero previous period means there is
	// no meaningful comparison.
	kpis := ComputeKPIs(current, nil, rng)
	if kpis.VariationVsPrevious != nil {
		t.Fatalf("expected nil variation, got %f", *kpis.VariationVsPrevious)
	}
}

func TestComputeKPIsEmptyInput(t *testing.T) {
	rng := core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)}
	kpis := ComputeKPIs(nil, nil, rng)
	if kpis.TotalAmount != 0 || kpis.AverageDaily != 0 {
		t.Fatalf("expected zero KPIs, got %+v", kpis)
	}
	if kpis.TopExpenseType.Label != "N/A" || kpis.TopClient.Label != "N/A" {
		t.Fatalf("expected N/A sentinels, got %+v", kpis)
	}
	if kpis.TopSpender.Label != "N/A" {
		t.Fatalf("expected N/A top spender, got %+v", kpis.TopSpender)
	}
}

func TestTopSpenderCountsReportCurrencyOnly(t *testing.T) {
	rng := core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)}
	current := []core.ExpenseRecord{
		fullRec("2024-03-01", "Combustible", "ACME", "Ana", "ARS", 100),
		fullRec("2024-03-02", "Combustible", "ACME", "Ana", "ARS", 30),
		// Bruno's USD spend is larger but outside the report currency.
		fullRec("2024-03-03", "Hotel", "ACME", "Bruno", "USD", 500),
	}
	kpis := ComputeKPIs(current, nil, rng)
	if kpis.TopSpender.Label != "Ana" || kpis.TopSpender.Amount != 130 {
		t.Fatalf("unexpected top spender: %+v", kpis.TopSpender)
	}
	if kpis.TopSpender.Currency != "ARS" {
		t.Fatalf("expected ARS, got %s", kpis.TopSpender.Currency)
	}
}

func TestTopSpenderNoRecordsInCurrency(t *testing.T) {
	rng := core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)}
	current := []core.ExpenseRecord{
		fullRec("2024-03-03", "Hotel", "ACME", "Bruno", "USD", 500),
	}
	kpis := ComputeKPIs(current, nil, rng)
	if kpis.TopSpender.Label != "N/A" || kpis.TopSpender.Amount != 0 {
		t.Fatalf("expected N/A spender, got %+v", kpis.TopSpender)
	}
}
