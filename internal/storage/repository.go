package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"infogastos/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the expense record store behind the report engine.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append stores a normalized expense record and returns its row reference.
func (r *SQLiteRepository) Append(ctx context.Context, e core.ExpenseRecord, f core.DimensionFilters) (string, error) {
	e = core.Normalize(e)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (
			expense_date, gross_amount, vat_amount, currency, description,
			expense_type_id, expense_type, responsible_id, responsible,
			client_id, client, province_id, province, carrier_id, carrier
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date.Format("2006-01-02"), e.GrossAmount, e.VATAmount, e.Currency, e.Description,
		f.ExpenseTypeID, e.ExpenseType, f.ResponsibleID, e.Responsible,
		f.ClientID, e.Client, f.ProvinceID, e.Province, f.CarrierID, e.Carrier,
	)
	if err != nil {
		return "", fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", e.Date.Format("2006-01-02"),
		"gross_amount", e.GrossAmount,
		"currency", e.Currency)

	return strconv.FormatInt(id, 10), nil
}

// GetExpense retrieves a single record by ID.
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.ExpenseRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+`
		FROM expenses WHERE id = ? AND deleted_at IS NULL`, id)
	rec, err := scanExpense(row)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("get expense by id: %w", err)
	}
	return rec, nil
}

// SoftDeleteExpense marks a record as deleted without removing the row.
func (r *SQLiteRepository) SoftDeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET deleted_at = CURRENT_TIMESTAMP
		WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByRange implements report.RecordSource: all non-deleted records whose
// date falls inside the inclusive range, narrowed by the dimension filters.
// Rows come back normalized into the canonical ExpenseRecord shape.
func (r *SQLiteRepository) ListByRange(ctx context.Context, rng core.DateRange, f core.DimensionFilters) ([]core.ExpenseRecord, error) {
	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("list by range: %w", err)
	}

	query := selectColumns + `
		FROM expenses
		WHERE deleted_at IS NULL AND expense_date >= ? AND expense_date <= ?`
	args := []interface{}{rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02")}

	for _, dim := range []struct {
		column, value string
	}{
		{"expense_type_id", f.ExpenseTypeID},
		{"responsible_id", f.ResponsibleID},
		{"client_id", f.ClientID},
		{"province_id", f.ProvinceID},
		{"carrier_id", f.CarrierID},
	} {
		if dim.value != "" {
			query += " AND " + dim.column + " = ?"
			args = append(args, dim.value)
		}
	}
	query += " ORDER BY expense_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses by range: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

const selectColumns = `
	SELECT id, expense_date, gross_amount, vat_amount, currency, description,
	       expense_type, responsible, client, province, carrier`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanExpense normalizes a stored row into the canonical record shape the
// engine expects: NULL amounts become zero, labels are trimmed, the currency
// defaults to ARS. One malformed row degrades to zero contributions instead
// of failing the report.
func scanExpense(row rowScanner) (core.ExpenseRecord, error) {
	var (
		id                                                     int64
		dateStr                                                string
		gross, vat                                             sql.NullFloat64
		currency, description                                  sql.NullString
		expenseType, responsible, client, province, carrier    sql.NullString
	)
	if err := row.Scan(&id, &dateStr, &gross, &vat, &currency, &description,
		&expenseType, &responsible, &client, &province, &carrier); err != nil {
		return core.ExpenseRecord{}, err
	}

	rec := core.ExpenseRecord{
		ID:          strconv.FormatInt(id, 10),
		GrossAmount: gross.Float64,
		VATAmount:   vat.Float64,
		Currency:    currency.String,
		Description: description.String,
		ExpenseType: expenseType.String,
		Responsible: responsible.String,
		Client:      client.String,
		Province:    province.String,
		Carrier:     carrier.String,
	}
	if d, err := core.ParseDate(strings.TrimSpace(dateStr)); err == nil {
		rec.Date = d
	}
	return core.Normalize(rec), nil
}
