package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.34", 12.34, true},
		{"12,34", 12.34, true},
		{"100", 100, true},
		{" 7.5 ", 7.5, true},
		{"", 0, false},
		{"-3", 0, false},
		{"+3", 0, false},
		{"0", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: expected %f, got %f (%v)", i, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d != NewDate(2024, 3, 1) {
		t.Fatalf("unexpected date %v", d)
	}

	for _, bad := range []string{"", "01/03/2024", "2024-13-01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
