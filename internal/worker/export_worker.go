package worker

import (
	"context"
	"fmt"
	"log/slog"

	"infogastos/internal/amqp"
	"infogastos/internal/core"
	"infogastos/internal/export"
	"infogastos/internal/report"
)

// ExportWorker consumes report export jobs: it regenerates the report from
// the record store and ships the normalized rows to the spreadsheet sink.
type ExportWorker struct {
	engine *report.Engine
	writer export.SheetWriter
}

func NewExportWorker(source report.RecordSource, writer export.SheetWriter) *ExportWorker {
	return &ExportWorker{
		engine: report.NewEngine(source),
		writer: writer,
	}
}

// HandleExportMessage processes a single export job from AMQP.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.ReportExportMessage) error {
	slog.InfoContext(ctx, "Processing export message",
		"title", msg.Title,
		"from", msg.From,
		"to", msg.To,
		"granularity", msg.Granularity)

	rng, err := msg.Range()
	if err != nil {
		return fmt.Errorf("export message range: %w", err)
	}

	cfg := report.Config{
		Range:       rng,
		Granularity: core.Granularity(msg.Granularity),
		Filters:     msg.Filters,
	}
	if cfg.Granularity == "" {
		cfg.Granularity = core.Daily
	}

	result, err := w.engine.Generate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("generate report for export: %w", err)
	}

	title := msg.Title
	if title == "" {
		title = fmt.Sprintf("Reporte %s a %s", msg.From, msg.To)
	}

	if err := w.writer.WriteSheets(ctx, title, export.BuildSheets(result)); err != nil {
		return fmt.Errorf("write export sheets: %w", err)
	}

	slog.InfoContext(ctx, "Report export completed",
		"title", title,
		"records_total", result.KPIs.TotalAmount,
		"periods", len(result.Periods))

	return nil
}
