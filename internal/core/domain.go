package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// DefaultCurrency is the report currency assumed when a record carries none.
const DefaultCurrency = "ARS"

// UnspecifiedLabel replaces empty dimension labels during aggregation.
const UnspecifiedLabel = "No especificado"

type (
	// Granularity is the time-bucketing resolution for period series.
	Granularity string

	// DateRange is an inclusive calendar date range.
	DateRange struct {
		From time.Time
		To   time.Time
	}

	// ExpenseRecord is a single normalized expense ("gasto"). Records are
	// value objects: once built they are never mutated by the report engine.
	ExpenseRecord struct {
		ID          string
		Date        time.Time
		GrossAmount float64
		VATAmount   float64
		Currency    string
		Description string

		// Dimension labels for breakdown tables. Empty labels are shown
		// as UnspecifiedLabel by the aggregation layer.
		ExpenseType string
		Responsible string
		Client      string
		Province    string
		Carrier     string
	}

	// DimensionFilters narrows a record query by dimension identifiers.
	// Empty values mean no filter on that dimension.
	DimensionFilters struct {
		ExpenseTypeID string
		ResponsibleID string
		ClientID      string
		ProvinceID    string
		CarrierID     string
	}
)

var (
	ErrInvalidRange     = errors.New("invalid date range")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
)

// NewDate builds a calendar date at UTC midnight. Expense dates carry no
// time-of-day semantics, so every date in the system goes through here.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds an inclusive range, truncating both ends to calendar dates.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{
		From: NewDate(from.Year(), int(from.Month()), from.Day()),
		To:   NewDate(to.Year(), int(to.Month()), to.Day()),
	}
}

func (r DateRange) Validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return ErrInvalidRange
	}
	if r.To.Before(r.From) {
		return ErrInvalidRange
	}
	return nil
}

// Days returns the inclusive number of calendar days in the range.
func (r DateRange) Days() int {
	return int(r.To.Sub(r.From).Hours()/24) + 1
}

func (e ExpenseRecord) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if e.GrossAmount <= 0 {
		return ErrInvalidAmount
	}
	if e.VATAmount < 0 || e.VATAmount > e.GrossAmount {
		return ErrInvalidAmount
	}
	return nil
}

// NetAmount is the gross amount minus the VAT component.
func (e ExpenseRecord) NetAmount() float64 {
	return e.GrossAmount - e.VATAmount
}

// Normalize maps a record into the single canonical shape the report engine
// expects: trimmed labels, defaulted currency, date truncated to UTC midnight.
// Heterogeneous source schemas must pass through here before aggregation.
func Normalize(e ExpenseRecord) ExpenseRecord {
	e.Currency = strings.ToUpper(strings.TrimSpace(e.Currency))
	if e.Currency == "" {
		e.Currency = DefaultCurrency
	}
	e.ExpenseType = strings.TrimSpace(e.ExpenseType)
	e.Responsible = strings.TrimSpace(e.Responsible)
	e.Client = strings.TrimSpace(e.Client)
	e.Province = strings.TrimSpace(e.Province)
	e.Carrier = strings.TrimSpace(e.Carrier)
	e.Description = strings.TrimSpace(e.Description)
	if !e.Date.IsZero() {
		e.Date = NewDate(e.Date.Year(), int(e.Date.Month()), e.Date.Day())
	}
	return e
}

func (g Granularity) Validate() error {
	switch g {
	case Daily, Weekly, Monthly:
		return nil
	}
	return errors.New("invalid granularity")
}

// IsZero reports whether no dimension filter is set.
func (f DimensionFilters) IsZero() bool {
	return f.ExpenseTypeID == "" && f.ResponsibleID == "" && f.ClientID == "" &&
		f.ProvinceID == "" && f.CarrierID == ""
}
