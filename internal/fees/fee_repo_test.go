package fees

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMarkPaidWritesOneTransaction(t *testing.T) {
	when := date(2024, time.May, 3)
	p := Payment{PlayerID: 1, Status: StatusPending, Amount: decimal.RequireFromString("100.00")}

	entry := markPaid(&p, when)
	if entry == nil {
		t.Fatal("first mark should produce a payment transaction")
	}
	if entry.Type != TransactionPayment {
		t.Errorf("expected %q transaction, got %q", TransactionPayment, entry.Type)
	}
	if !entry.Amount.Equal(p.Amount) {
		t.Errorf("transaction amount %s should match payment amount %s", entry.Amount, p.Amount)
	}
	if p.Status != StatusPaid || p.PaymentDate == nil {
		t.Errorf("payment not transitioned: status=%s paymentDate=%v", p.Status, p.PaymentDate)
	}

	if dup := markPaid(&p, when.AddDate(0, 0, 1)); dup != nil {
		t.Error("marking an already-paid payment again must not write a second transaction")
	}
	if !p.PaymentDate.Equal(when) {
		t.Errorf("double submit must not move the payment date, got %v", p.PaymentDate)
	}
}

func TestMarkPaidKeepsLateRowsEligible(t *testing.T) {
	// a stored LATE row is still unpaid; marking it paid has a flow to record
	p := Payment{PlayerID: 1, Status: StatusLate, Amount: decimal.RequireFromString("50.00")}
	if entry := markPaid(&p, date(2024, time.May, 20)); entry == nil {
		t.Fatal("marking a late payment paid should produce a transaction")
	}
	if p.Status != StatusPaid {
		t.Errorf("expected PAID, got %s", p.Status)
	}
}

func TestMarkUnpaidOnlyReversesPaid(t *testing.T) {
	pending := Payment{PlayerID: 1, Status: StatusPending, Amount: decimal.RequireFromString("100.00")}
	if entry := markUnpaid(&pending); entry != nil {
		t.Error("reverting a pending payment must not write a reversal")
	}
	if pending.Status != StatusPending {
		t.Errorf("no-op revert must not change status, got %s", pending.Status)
	}

	when := date(2024, time.May, 3)
	paid := Payment{PlayerID: 1, Status: StatusPaid, PaymentDate: &when, Amount: decimal.RequireFromString("100.00")}
	entry := markUnpaid(&paid)
	if entry == nil {
		t.Fatal("reverting a paid payment should produce a reversal transaction")
	}
	if entry.Type != TransactionReversal {
		t.Errorf("expected %q transaction, got %q", TransactionReversal, entry.Type)
	}
	if !entry.Amount.Equal(decimal.RequireFromString("-100.00")) {
		t.Errorf("reversal should negate the amount, got %s", entry.Amount)
	}
	if paid.Status != StatusPending || paid.PaymentDate != nil {
		t.Errorf("payment not reverted: status=%s paymentDate=%v", paid.Status, paid.PaymentDate)
	}
}
