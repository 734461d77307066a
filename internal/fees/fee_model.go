package fees

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Status is the payment status stored on a Payment row and returned by the
// resolver. Stored statuses are returned verbatim; EXEMPT is only ever
// computed, never stored on a Payment.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusLate     Status = "LATE"
	StatusVeryLate Status = "VERY_LATE"
	StatusExempt   Status = "EXEMPT"
)

// Payment is one monthly fee charge for a player. At most one row may exist
// per (player, month, year); the unique index is the authority.
type Payment struct {
	gorm.Model
	PlayerID    uint            `json:"player_id" gorm:"index;uniqueIndex:idx_payment_player_period"`
	Month       int             `json:"month" gorm:"uniqueIndex:idx_payment_player_period"`
	Year        int             `json:"year" gorm:"uniqueIndex:idx_payment_player_period"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(10,2)"`
	Status      Status          `json:"status" gorm:"type:varchar(16);default:'PENDING'"`
	PaymentDate *time.Time      `json:"payment_date"` // set iff paid
	DueDate     time.Time       `json:"due_date"`
}

// MonthlyFeeException overrides the default fee for one player-period:
// either a full exemption or a custom amount.
type MonthlyFeeException struct {
	gorm.Model
	PlayerID uint             `json:"player_id" gorm:"index;uniqueIndex:idx_exception_player_period"`
	Month    int              `json:"month" gorm:"uniqueIndex:idx_exception_player_period"`
	Year     int              `json:"year" gorm:"uniqueIndex:idx_exception_player_period"`
	IsExempt bool             `json:"is_exempt" gorm:"default:false"`
	Amount   *decimal.Decimal `json:"amount" gorm:"type:numeric(10,2)"`
	Reason   string           `json:"reason"`
}

// MonthlyFeeConfig is the per-team default fee and due day.
type MonthlyFeeConfig struct {
	gorm.Model
	TeamID   uint            `json:"team_id" gorm:"uniqueIndex"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:numeric(10,2)"`
	DueDay   int             `json:"due_day" gorm:"default:10"`
	IsActive bool            `json:"is_active" gorm:"default:true"`
}

// HistoricalDebt is a manually entered arrears record predating regular
// payment tracking. It contributes to outstanding totals but is not a Payment.
type HistoricalDebt struct {
	gorm.Model
	PlayerID    uint            `json:"player_id" gorm:"index"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(10,2)"`
	Description string          `json:"description"`
	Settled     bool            `json:"settled" gorm:"default:false"`
}

const (
	TransactionPayment  = "payment"
	TransactionReversal = "reversal"
)

// Transaction is the derived ledger entry written whenever a payment is
// marked paid or unpaid.
type Transaction struct {
	gorm.Model
	Reference string          `json:"reference" gorm:"type:varchar(36);uniqueIndex"`
	PlayerID  uint            `json:"player_id" gorm:"index"`
	PaymentID uint            `json:"payment_id" gorm:"index"`
	Type      string          `json:"type"` // payment | reversal
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(10,2)"`
}
