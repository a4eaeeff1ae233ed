package report

import (
	"testing"

	"infogastos/internal/core"
)

func TestBucketKeyDaily(t *testing.T) {
	got := BucketKey(core.NewDate(2024, 3, 1), core.Daily)
	if got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}
}

func TestBucketKeyWeekly(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    string
	}{
		// Dec 31 2024 is a Tuesday; its Thursday falls in 2025, so it
		// belongs to week 1 of 2025.
		{2024, 12, 31, "2025-W01"},
		{2024, 1, 1, "2024-W01"},
		// Jan 1 2023 is a Sunday, still in the last week of 2022.
		{2023, 1, 1, "2022-W52"},
		{2024, 3, 4, "2024-W10"},
	}
	for i, tc := range cases {
		got := BucketKey(core.NewDate(tc.y, tc.m, tc.d), core.Weekly)
		if got != tc.want {
			t.Fatalf("case %d: expected %s, got %s", i, tc.want, got)
		}
	}
}

func TestBucketKeyMonthly(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    string
	}{
		{2024, 3, 15, "2024-03"},
		{2024, 12, 31, "2024-12"},
		{2025, 1, 1, "2025-01"},
	}
	for i, tc := range cases {
		got := BucketKey(core.NewDate(tc.y, tc.m, tc.d), core.Monthly)
		if got != tc.want {
			t.Fatalf("case %d: expected %s, got %s", i, tc.want, got)
		}
	}
}
