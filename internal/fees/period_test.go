package fees

import (
	"testing"
	"time"
)

func TestPeriodNext(t *testing.T) {
	tests := []struct {
		in       Period
		expected Period
	}{
		{in: Period{Month: 1, Year: 2024}, expected: Period{Month: 2, Year: 2024}},
		{in: Period{Month: 11, Year: 2024}, expected: Period{Month: 12, Year: 2024}},
		{in: Period{Month: 12, Year: 2024}, expected: Period{Month: 1, Year: 2025}},
	}
	for _, tc := range tests {
		if got := tc.in.Next(); got != tc.expected {
			t.Errorf("Next(%+v): wanted %+v, got %+v", tc.in, tc.expected, got)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b     time.Time
		expected int
	}{
		{a: date(2024, time.May, 10), b: date(2024, time.May, 25), expected: 15},
		{a: date(2024, time.May, 10), b: date(2024, time.May, 10), expected: 0},
		// partial days floor down
		{a: date(2024, time.May, 10), b: time.Date(2024, time.May, 25, 23, 0, 0, 0, time.UTC), expected: 15},
		{a: date(2024, time.May, 25), b: date(2024, time.May, 10), expected: -15},
		{a: date(2024, time.December, 31), b: date(2025, time.January, 5), expected: 5},
	}
	for _, tc := range tests {
		if got := DaysBetween(tc.a, tc.b); got != tc.expected {
			t.Errorf("DaysBetween(%v, %v): wanted %d, got %d", tc.a, tc.b, tc.expected, got)
		}
	}
}

func TestDueDateNormalizesShortMonths(t *testing.T) {
	// day 31 in February rolls forward rather than erroring
	got := Period{Month: 2, Year: 2023}.DueDate(31, time.UTC)
	if got.Month() != time.March {
		t.Errorf("expected overflow into March, got %v", got)
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Month: 3, Year: 2024}
	if !p.Contains(date(2024, time.March, 15)) {
		t.Error("expected March 2024 to be inside period")
	}
	if p.Contains(date(2024, time.April, 1)) {
		t.Error("expected April 2024 to be outside period")
	}
	if p.Contains(date(2023, time.March, 15)) {
		t.Error("expected March 2023 to be outside period")
	}
}
