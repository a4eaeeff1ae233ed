package core

import (
	"testing"
	"time"
)

func TestDateRangeValidate(t *testing.T) {
	cases := []struct {
		r  DateRange
		ok bool
	}{
		{DateRange{From: NewDate(2024, 1, 1), To: NewDate(2024, 1, 31)}, true},
		{DateRange{From: NewDate(2024, 1, 15), To: NewDate(2024, 1, 15)}, true},
		{DateRange{From: NewDate(2024, 2, 1), To: NewDate(2024, 1, 1)}, false},
		{DateRange{From: time.Time{}, To: NewDate(2024, 1, 1)}, false},
	}
	for i, tc := range cases {
		err := tc.r.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateRangeDays(t *testing.T) {
	cases := []struct {
		r    DateRange
		want int
	}{
		{DateRange{From: NewDate(2024, 3, 1), To: NewDate(2024, 3, 1)}, 1},
		{DateRange{From: NewDate(2024, 2, 1), To: NewDate(2024, 2, 29)}, 29},
		{DateRange{From: NewDate(2024, 1, 1), To: NewDate(2024, 12, 31)}, 366},
	}
	for i, tc := range cases {
		if got := tc.r.Days(); got != tc.want {
			t.Fatalf("case %d expected %d days, got %d", i, tc.want, got)
		}
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		Date:        NewDate(2024, 3, 1),
		Description: "nafta",
		GrossAmount: 121,
		VATAmount:   21,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []ExpenseRecord{
		{Description: "a", GrossAmount: 1},                                           // zero date
		{Date: NewDate(2024, 3, 1), Description: "", GrossAmount: 1},                 // empty description
		{Date: NewDate(2024, 3, 1), Description: "a", GrossAmount: 0},                // zero amount
		{Date: NewDate(2024, 3, 1), Description: "a", GrossAmount: 10, VATAmount: 11}, // vat above gross
		{Date: NewDate(2024, 3, 1), Description: "a", GrossAmount: 10, VATAmount: -1},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseRecordNetAmount(t *testing.T) {
	e := ExpenseRecord{GrossAmount: 121, VATAmount: 21}
	if got := e.NetAmount(); got != 100 {
		t.Fatalf("expected net 100, got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	e := Normalize(ExpenseRecord{
		Date:        time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
		Currency:    " ars ",
		ExpenseType: "  Combustible ",
		Description: " nafta ",
	})
	if e.Currency != "ARS" {
		t.Fatalf("expected ARS, got %q", e.Currency)
	}
	if e.ExpenseType != "Combustible" || e.Description != "nafta" {
		t.Fatalf("labels not trimmed: %+v", e)
	}
	if e.Date != NewDate(2024, 3, 1) {
		t.Fatalf("expected date truncated to midnight, got %v", e.Date)
	}

	if got := Normalize(ExpenseRecord{}).Currency; got != DefaultCurrency {
		t.Fatalf("expected default currency, got %q", got)
	}
}

func TestGranularityValidate(t *testing.T) {
	for _, g := range []Granularity{Daily, Weekly, Monthly} {
		if err := g.Validate(); err != nil {
			t.Fatalf("expected %s valid, got %v", g, err)
		}
	}
	if err := Granularity("hourly").Validate(); err == nil {
		t.Fatalf("expected error for unknown granularity")
	}
}
