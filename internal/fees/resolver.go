package fees

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// veryLateAfterDays is the lateness threshold separating LATE from VERY_LATE.
const veryLateAfterDays = 20

var (
	// ErrInvalidDueDay means the team fee config carries a due day outside 1..31.
	ErrInvalidDueDay = errors.New("fees: due day must be between 1 and 31")

	// ErrAmbiguousState means more than one payment or exception row exists for
	// the same player-period, which the unique indexes should make impossible.
	ErrAmbiguousState = errors.New("fees: multiple rows for one player-period")
)

// PlayerFeeContext is everything the resolver needs to know about one player
// for one billing period. Payments and Exceptions must already be filtered to
// the period; zero or one of each is expected.
type PlayerFeeContext struct {
	Payments   []Payment
	Exceptions []MonthlyFeeException
	JoinDate   *time.Time
	MonthlyFee decimal.Decimal

	// Period being evaluated. Zero value means "the month today falls in".
	Period Period
}

// Result is the resolved standing of a player for one period.
type Result struct {
	Status          Status     `json:"status"`
	DaysLate        int        `json:"days_late"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

// ResolveStatus computes a player's fee standing for a period. Precedence,
// first match wins:
//
//  1. an exemption for the period, even over a recorded payment
//  2. a recorded payment, whose stored status is returned verbatim
//  3. first-month grace: a player who joined during the period owes their
//     first fee only on the due day of the following month
//  4. due-date comparison against today
//
// It is a pure function: no side effects, safe to call concurrently.
func ResolveStatus(ctx PlayerFeeContext, dueDay int, today time.Time) (Result, error) {
	if dueDay < 1 || dueDay > 31 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDueDay, dueDay)
	}
	if len(ctx.Payments) > 1 {
		return Result{}, fmt.Errorf("%w: %d payments", ErrAmbiguousState, len(ctx.Payments))
	}
	if len(ctx.Exceptions) > 1 {
		return Result{}, fmt.Errorf("%w: %d exceptions", ErrAmbiguousState, len(ctx.Exceptions))
	}

	period := ctx.Period
	if period.IsZero() {
		period = PeriodOf(today)
	}

	if len(ctx.Exceptions) == 1 && ctx.Exceptions[0].IsExempt {
		return Result{Status: StatusExempt}, nil
	}

	if len(ctx.Payments) == 1 {
		p := ctx.Payments[0]
		return Result{Status: p.Status, LastPaymentDate: p.PaymentDate}, nil
	}

	if ctx.JoinDate != nil && period.Contains(*ctx.JoinDate) {
		deferred := period.Next().DueDate(dueDay, today.Location())
		if !today.After(deferred) {
			return Result{Status: StatusPending}, nil
		}
	}

	due := period.DueDate(dueDay, today.Location())
	if today.After(due) {
		daysLate := DaysBetween(due, today)
		status := StatusLate
		if daysLate > veryLateAfterDays {
			status = StatusVeryLate
		}
		return Result{Status: status, DaysLate: daysLate}, nil
	}
	return Result{Status: StatusPending}, nil
}

// EffectiveFee is the amount actually owed for the period: zero if exempt,
// the exception override if one is set, otherwise the player's default fee.
func EffectiveFee(ctx PlayerFeeContext) (decimal.Decimal, error) {
	if len(ctx.Exceptions) > 1 {
		return decimal.Zero, fmt.Errorf("%w: %d exceptions", ErrAmbiguousState, len(ctx.Exceptions))
	}
	if len(ctx.Exceptions) == 1 {
		ex := ctx.Exceptions[0]
		if ex.IsExempt {
			return decimal.Zero, nil
		}
		if ex.Amount != nil {
			return *ex.Amount, nil
		}
	}
	return ctx.MonthlyFee, nil
}
