package services

import (
	"context"
	"fmt"
	"log/slog"

	"infogastos/internal/amqp"
	"infogastos/internal/core"
	"infogastos/internal/report"
	"infogastos/internal/storage"
)

// ReportService orchestrates expense capture and report generation across
// SQLite and AMQP. Report computation itself is delegated to the engine.
type ReportService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
	engine     *report.Engine
}

func NewReportService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *ReportService {
	return &ReportService{
		storage:    storage,
		amqpClient: amqpClient,
		engine:     report.NewEngine(storage),
	}
}

// CreateExpense validates and stores an expense record.
func (s *ReportService) CreateExpense(ctx context.Context, e core.ExpenseRecord, f core.DimensionFilters) (string, error) {
	e = core.Normalize(e)
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validate expense: %w", err)
	}

	ref, err := s.storage.Append(ctx, e, f)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}
	return ref, nil
}

// DeleteExpense soft deletes an expense record.
func (s *ReportService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.storage.SoftDeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}
	return nil
}

// GenerateReport runs the aggregation engine against the record store.
func (s *ReportService) GenerateReport(ctx context.Context, cfg report.Config) (*report.Result, error) {
	res, err := s.engine.Generate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	return res, nil
}

// RequestExport enqueues an async spreadsheet export for the given report
// configuration. Without an AMQP client the request is skipped, not failed:
// the caller still has the on-screen report.
func (s *ReportService) RequestExport(ctx context.Context, title string, cfg report.Config) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping export request", "title", title)
		return nil
	}

	msg := amqp.NewReportExportMessage(title, cfg.Range, cfg.Granularity, cfg.Filters)
	if err := s.amqpClient.PublishReportExport(ctx, msg); err != nil {
		return fmt.Errorf("publish export request: %w", err)
	}
	return nil
}

// Close closes both storage and AMQP connections.
func (s *ReportService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close report service: %v", errs)
	}

	return nil
}
