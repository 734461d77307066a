package fees

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestResolveStatus(t *testing.T) {
	tests := map[string]struct {
		ctx    PlayerFeeContext
		dueDay int
		today  time.Time
		want   Result
	}{
		"pending before due date": {
			ctx:    PlayerFeeContext{},
			dueDay: 10,
			today:  date(2024, time.May, 5),
			want:   Result{Status: StatusPending},
		},
		"pending on due date": {
			ctx:    PlayerFeeContext{},
			dueDay: 10,
			today:  date(2024, time.May, 10),
			want:   Result{Status: StatusPending},
		},
		"late after due date": {
			ctx:    PlayerFeeContext{},
			dueDay: 10,
			today:  date(2024, time.May, 25),
			want:   Result{Status: StatusLate, DaysLate: 15},
		},
		"late at threshold boundary": {
			ctx:    PlayerFeeContext{},
			dueDay: 10,
			today:  date(2024, time.May, 30),
			want:   Result{Status: StatusLate, DaysLate: 20},
		},
		"very late past threshold": {
			ctx:    PlayerFeeContext{},
			dueDay: 10,
			today:  date(2024, time.May, 31),
			want:   Result{Status: StatusVeryLate, DaysLate: 21},
		},
		"very late evaluating previous period": {
			ctx:    PlayerFeeContext{Period: Period{Month: 5, Year: 2024}},
			dueDay: 10,
			today:  date(2024, time.June, 2),
			want:   Result{Status: StatusVeryLate, DaysLate: 23},
		},
		"recorded payment returned verbatim": {
			ctx: PlayerFeeContext{Payments: []Payment{{
				Month: 5, Year: 2024, Status: StatusPaid,
				PaymentDate: datePtr(2024, time.May, 8),
			}}},
			dueDay: 10,
			today:  date(2024, time.May, 25),
			want:   Result{Status: StatusPaid, LastPaymentDate: datePtr(2024, time.May, 8)},
		},
		"recorded late payment not recomputed": {
			ctx: PlayerFeeContext{Payments: []Payment{{
				Month: 5, Year: 2024, Status: StatusLate,
				PaymentDate: datePtr(2024, time.May, 18),
			}}},
			dueDay: 10,
			today:  date(2024, time.June, 20),
			want:   Result{Status: StatusLate, LastPaymentDate: datePtr(2024, time.May, 18)},
		},
		"exemption beats recorded payment": {
			ctx: PlayerFeeContext{
				Payments:   []Payment{{Month: 5, Year: 2024, Status: StatusPaid, PaymentDate: datePtr(2024, time.May, 2)}},
				Exceptions: []MonthlyFeeException{{Month: 5, Year: 2024, IsExempt: true}},
			},
			dueDay: 10,
			today:  date(2024, time.May, 25),
			want:   Result{Status: StatusExempt},
		},
		"exemption beats lateness": {
			ctx: PlayerFeeContext{
				Exceptions: []MonthlyFeeException{{Month: 5, Year: 2024, IsExempt: true}},
			},
			dueDay: 10,
			today:  date(2024, time.June, 30),
			want:   Result{Status: StatusExempt},
		},
		"amount override alone does not exempt": {
			ctx: PlayerFeeContext{
				Exceptions: []MonthlyFeeException{{Month: 5, Year: 2024, Amount: decimalPtr("50.00")}},
			},
			dueDay: 10,
			today:  date(2024, time.May, 25),
			want:   Result{Status: StatusLate, DaysLate: 15},
		},
		"join month grace defers first due date": {
			ctx: PlayerFeeContext{
				JoinDate: datePtr(2024, time.March, 15),
				Period:   Period{Month: 3, Year: 2024},
			},
			dueDay: 10,
			today:  date(2024, time.April, 5),
			want:   Result{Status: StatusPending},
		},
		"join month grace holds on deferred due date": {
			ctx: PlayerFeeContext{
				JoinDate: datePtr(2024, time.March, 15),
				Period:   Period{Month: 3, Year: 2024},
			},
			dueDay: 10,
			today:  date(2024, time.April, 10),
			want:   Result{Status: StatusPending},
		},
		"join month grace expires after deferred due date": {
			ctx: PlayerFeeContext{
				JoinDate: datePtr(2024, time.March, 15),
				Period:   Period{Month: 3, Year: 2024},
			},
			dueDay: 10,
			today:  date(2024, time.April, 11),
			want:   Result{Status: StatusVeryLate, DaysLate: 32},
		},
		"join in earlier month gets no grace": {
			ctx: PlayerFeeContext{
				JoinDate: datePtr(2024, time.January, 3),
			},
			dueDay: 10,
			today:  date(2024, time.May, 25),
			want:   Result{Status: StatusLate, DaysLate: 15},
		},
		"december grace rolls into january": {
			ctx: PlayerFeeContext{
				JoinDate: datePtr(2024, time.December, 20),
				Period:   Period{Month: 12, Year: 2024},
			},
			dueDay: 10,
			today:  date(2025, time.January, 9),
			want:   Result{Status: StatusPending},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveStatus(tc.ctx, tc.dueDay, tc.today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tc.want, got) {
				t.Errorf("wanted %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestResolveStatusErrors(t *testing.T) {
	tests := map[string]struct {
		ctx     PlayerFeeContext
		dueDay  int
		wantErr error
	}{
		"due day zero":        {dueDay: 0, wantErr: ErrInvalidDueDay},
		"due day negative":    {dueDay: -4, wantErr: ErrInvalidDueDay},
		"due day over 31":     {dueDay: 32, wantErr: ErrInvalidDueDay},
		"duplicate payments": {
			ctx: PlayerFeeContext{Payments: []Payment{
				{Month: 5, Year: 2024}, {Month: 5, Year: 2024},
			}},
			dueDay:  10,
			wantErr: ErrAmbiguousState,
		},
		"duplicate exceptions": {
			ctx: PlayerFeeContext{Exceptions: []MonthlyFeeException{
				{Month: 5, Year: 2024}, {Month: 5, Year: 2024},
			}},
			dueDay:  10,
			wantErr: ErrAmbiguousState,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveStatus(tc.ctx, tc.dueDay, date(2024, time.May, 25))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("wanted error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestResolveStatusIsPure(t *testing.T) {
	ctx := PlayerFeeContext{JoinDate: datePtr(2024, time.March, 15)}
	today := date(2024, time.May, 25)

	first, err := ResolveStatus(ctx, 10, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ResolveStatus(ctx, 10, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across identical calls: %+v vs %+v", first, second)
	}
}

func TestEffectiveFee(t *testing.T) {
	fee := decimal.RequireFromString("120.00")

	tests := map[string]struct {
		ctx  PlayerFeeContext
		want decimal.Decimal
	}{
		"default fee": {
			ctx:  PlayerFeeContext{MonthlyFee: fee},
			want: fee,
		},
		"exempt is zero": {
			ctx: PlayerFeeContext{
				MonthlyFee: fee,
				Exceptions: []MonthlyFeeException{{IsExempt: true, Amount: decimalPtr("50.00")}},
			},
			want: decimal.Zero,
		},
		"override amount": {
			ctx: PlayerFeeContext{
				MonthlyFee: fee,
				Exceptions: []MonthlyFeeException{{Amount: decimalPtr("75.50")}},
			},
			want: decimal.RequireFromString("75.50"),
		},
		"exception without amount falls back": {
			ctx: PlayerFeeContext{
				MonthlyFee: fee,
				Exceptions: []MonthlyFeeException{{}},
			},
			want: fee,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := EffectiveFee(tc.ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.want.Equal(got) {
				t.Errorf("wanted %s, got %s", tc.want, got)
			}
		})
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
