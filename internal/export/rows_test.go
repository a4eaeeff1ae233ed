package export

import (
	"testing"

	"infogastos/internal/core"
	"infogastos/internal/report"
)

func sampleResult() *report.Result {
	records := []core.ExpenseRecord{
		{Date: core.NewDate(2024, 3, 1), ExpenseType: "Combustible", Client: "ACME", Responsible: "Ana", Currency: "ARS", GrossAmount: 121, VATAmount: 21},
		{Date: core.NewDate(2024, 3, 2), ExpenseType: "Peajes", Client: "ACME", Responsible: "Ana", Currency: "ARS", GrossAmount: 50},
	}
	cfg := report.Config{
		Range:       core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)},
		Granularity: core.Daily,
	}
	return report.Compute(records, nil, cfg)
}

func TestBuildSheetsShape(t *testing.T) {
	sheets := BuildSheets(sampleResult())

	if len(sheets) != 7 {
		t.Fatalf("expected 7 sheets, got %d", len(sheets))
	}
	wantNames := []string{SheetKPIs, SheetPeriods, SheetTypes, SheetResponsible, SheetClients, SheetProvinces, SheetVAT}
	for i, name := range wantNames {
		if sheets[i].Name != name {
			t.Fatalf("expected sheet %q at %d, got %q", name, i, sheets[i].Name)
		}
	}
}

func TestBuildSheetsRawValues(t *testing.T) {
	sheets := BuildSheets(sampleResult())

	// Period sheet: header + 2 daily buckets; amounts stay numeric.
	periods := sheets[1]
	if len(periods.Rows) != 3 {
		t.Fatalf("expected 3 period rows, got %d", len(periods.Rows))
	}
	if v, ok := periods.Rows[1][2].(float64); !ok || v != 121 {
		t.Fatalf("expected raw float amount, got %#v", periods.Rows[1][2])
	}

	// Type sheet sorted descending by amount.
	types := sheets[2]
	if types.Rows[1][0] != "Combustible" || types.Rows[2][0] != "Peajes" {
		t.Fatalf("unexpected type order: %v", types.Rows)
	}
}

func TestBuildSheetsNilVariation(t *testing.T) {
	sheets := BuildSheets(sampleResult())
	kpis := sheets[0]
	// Previous period empty, so the variation cell carries the N/A sentinel.
	found := false
	for _, row := range kpis.Rows {
		if row[0] == "Variación vs período anterior (%)" {
			found = true
			if row[1] != "N/A" {
				t.Fatalf("expected N/A variation, got %#v", row[1])
			}
		}
	}
	if !found {
		t.Fatalf("variation row missing")
	}
}

func TestBuildSheetsVATTotals(t *testing.T) {
	sheets := BuildSheets(sampleResult())
	vat := sheets[6]
	last := vat.Rows[len(vat.Rows)-1]
	if last[4] != 171.0 {
		t.Fatalf("expected total gross 171, got %#v", last[4])
	}
}
