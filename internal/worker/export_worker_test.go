package worker

import (
	"context"
	"errors"
	"testing"

	"infogastos/internal/amqp"
	"infogastos/internal/core"
	"infogastos/internal/export"
	"infogastos/internal/export/memory"
)

type stubSource struct {
	records []core.ExpenseRecord
	err     error
}

func (s *stubSource) ListByRange(_ context.Context, _ core.DateRange, _ core.DimensionFilters) ([]core.ExpenseRecord, error) {
	return s.records, s.err
}

func exportMsg(title string) *amqp.ReportExportMessage {
	rng := core.DateRange{From: core.NewDate(2024, 3, 1), To: core.NewDate(2024, 3, 31)}
	return amqp.NewReportExportMessage(title, rng, core.Daily, core.DimensionFilters{})
}

func TestHandleExportMessage(t *testing.T) {
	src := &stubSource{records: []core.ExpenseRecord{
		{Date: core.NewDate(2024, 3, 1), Description: "nafta", ExpenseType: "Combustible", Currency: "ARS", GrossAmount: 100},
	}}
	sink := memory.New()
	w := NewExportWorker(src, sink)

	if err := w.HandleExportMessage(context.Background(), exportMsg("Marzo")); err != nil {
		t.Fatalf("handle: %v", err)
	}

	sheets := sink.Sheets("Marzo")
	if len(sheets) == 0 {
		t.Fatalf("expected sheets written")
	}
	if sheets[0].Name != export.SheetKPIs {
		t.Fatalf("expected KPI sheet first, got %s", sheets[0].Name)
	}
}

func TestHandleExportMessageDefaultTitle(t *testing.T) {
	sink := memory.New()
	w := NewExportWorker(&stubSource{}, sink)

	if err := w.HandleExportMessage(context.Background(), exportMsg("")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if sink.LastTitle() != "Reporte 2024-03-01 a 2024-03-31" {
		t.Fatalf("unexpected title %q", sink.LastTitle())
	}
}

func TestHandleExportMessageBadRange(t *testing.T) {
	w := NewExportWorker(&stubSource{}, memory.New())
	msg := exportMsg("x")
	msg.From, msg.To = msg.To, msg.From
	if err := w.HandleExportMessage(context.Background(), msg); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestHandleExportMessageSourceFailure(t *testing.T) {
	w := NewExportWorker(&stubSource{err: errors.New("db down")}, memory.New())
	if err := w.HandleExportMessage(context.Background(), exportMsg("x")); err == nil {
		t.Fatalf("expected error when source fails")
	}
}
