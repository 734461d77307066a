package fees

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerStanding is one roster line of a team fee report.
type PlayerStanding struct {
	PlayerID        uint            `json:"player_id"`
	Name            string          `json:"name"`
	Status          Status          `json:"status"`
	DaysLate        int             `json:"days_late"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
	EffectiveFee    decimal.Decimal `json:"effective_fee"`
	Error           string          `json:"error,omitempty"`
}

// TeamReport is the resolved standing of a whole roster for one period.
// TotalExpected sums the effective fee of every non-exempt player.
type TeamReport struct {
	TeamID        uint             `json:"team_id"`
	Period        Period           `json:"period"`
	DueDay        int              `json:"due_day"`
	TotalExpected decimal.Decimal  `json:"total_expected"`
	Players       []PlayerStanding `json:"players"`
}

// BuildTeamReport resolves every roster entry for the period. A resolver
// error on one player is recorded on that line and excluded from the total;
// it never aborts the rest of the roster.
func BuildTeamReport(
	teamID uint,
	p Period,
	dueDay int,
	teamDefault decimal.Decimal,
	roster []RosterEntry,
	paymentsByPlayer map[uint][]Payment,
	exceptionsByPlayer map[uint][]MonthlyFeeException,
	today time.Time,
) TeamReport {
	report := TeamReport{
		TeamID:        teamID,
		Period:        p,
		DueDay:        dueDay,
		TotalExpected: decimal.Zero,
		Players:       make([]PlayerStanding, 0, len(roster)),
	}

	for _, entry := range roster {
		ctx := PlayerFeeContext{
			Payments:   paymentsByPlayer[entry.ID],
			Exceptions: exceptionsByPlayer[entry.ID],
			JoinDate:   entry.JoinDate,
			MonthlyFee: playerFee(entry, teamDefault),
			Period:     p,
		}

		standing := PlayerStanding{PlayerID: entry.ID, Name: entry.Name}

		result, err := ResolveStatus(ctx, dueDay, today)
		if err != nil {
			standing.Error = err.Error()
			report.Players = append(report.Players, standing)
			continue
		}
		fee, err := EffectiveFee(ctx)
		if err != nil {
			standing.Error = err.Error()
			report.Players = append(report.Players, standing)
			continue
		}

		standing.Status = result.Status
		standing.DaysLate = result.DaysLate
		standing.LastPaymentDate = result.LastPaymentDate
		standing.EffectiveFee = fee

		if result.Status != StatusExempt {
			report.TotalExpected = report.TotalExpected.Add(fee)
		}
		report.Players = append(report.Players, standing)
	}
	return report
}
