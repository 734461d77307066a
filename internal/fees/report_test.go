package fees

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildTeamReportTotalExpected(t *testing.T) {
	p := Period{Month: 5, Year: 2024}
	today := date(2024, time.May, 12)
	teamDefault := decimal.RequireFromString("100.00")

	roster := []RosterEntry{
		{ID: 1, Name: "Ana", MonthlyFee: decimal.RequireFromString("120.00")},
		{ID: 2, Name: "Bruno"}, // falls back to the team default
		{ID: 3, Name: "Carla", MonthlyFee: decimal.RequireFromString("80.00")},
		{ID: 4, Name: "Diego", MonthlyFee: decimal.RequireFromString("90.00")},
	}
	exceptions := map[uint][]MonthlyFeeException{
		3: {{PlayerID: 3, Month: 5, Year: 2024, IsExempt: true}},
		4: {{PlayerID: 4, Month: 5, Year: 2024, Amount: decimalPtr("45.50")}},
	}
	payments := map[uint][]Payment{
		1: {{PlayerID: 1, Month: 5, Year: 2024, Status: StatusPaid, Amount: decimal.RequireFromString("120.00"), PaymentDate: datePtr(2024, time.May, 3)}},
	}

	report := BuildTeamReport(7, p, 10, teamDefault, roster, payments, exceptions, today)

	if len(report.Players) != 4 {
		t.Fatalf("expected 4 standings, got %d", len(report.Players))
	}

	// non-exempt: Ana 120 + Bruno 100 + Diego 45.50
	wantTotal := decimal.RequireFromString("265.50")
	if !report.TotalExpected.Equal(wantTotal) {
		t.Errorf("total expected: wanted %s, got %s", wantTotal, report.TotalExpected)
	}

	// the total must equal the sum of effective fees over non-exempt lines
	sum := decimal.Zero
	for _, standing := range report.Players {
		if standing.Status != StatusExempt && standing.Error == "" {
			sum = sum.Add(standing.EffectiveFee)
		}
	}
	if !sum.Equal(report.TotalExpected) {
		t.Errorf("sum of lines %s does not round-trip to total %s", sum, report.TotalExpected)
	}

	if report.Players[0].Status != StatusPaid {
		t.Errorf("Ana should carry her stored PAID status, got %s", report.Players[0].Status)
	}
	if report.Players[2].Status != StatusExempt {
		t.Errorf("Carla should be exempt, got %s", report.Players[2].Status)
	}
}

func TestBuildTeamReportIsolatesPlayerErrors(t *testing.T) {
	p := Period{Month: 5, Year: 2024}
	roster := []RosterEntry{
		{ID: 1, Name: "Ana", MonthlyFee: decimal.RequireFromString("100.00")},
		{ID: 2, Name: "Bruno", MonthlyFee: decimal.RequireFromString("100.00")},
	}
	// duplicate payment rows for Ana: upstream data-integrity violation
	payments := map[uint][]Payment{
		1: {{PlayerID: 1, Month: 5, Year: 2024}, {PlayerID: 1, Month: 5, Year: 2024}},
	}

	report := BuildTeamReport(7, p, 10, decimal.Zero, roster, payments, nil, date(2024, time.May, 5))

	if report.Players[0].Error == "" {
		t.Error("Ana's ambiguous rows should surface as an error")
	}
	if report.Players[1].Error != "" {
		t.Errorf("Bruno should resolve cleanly, got error %q", report.Players[1].Error)
	}
	if report.Players[1].Status != StatusPending {
		t.Errorf("Bruno should be pending, got %s", report.Players[1].Status)
	}
	if !report.TotalExpected.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("errored line must not count toward the total, got %s", report.TotalExpected)
	}
}
