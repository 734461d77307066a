package player

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Player is one roster entry. MonthlyFee is the default fee before any
// per-month exception is applied.
type Player struct {
	gorm.Model
	TeamID     uint            `json:"team_id" gorm:"index;not null"`
	Name       string          `json:"name" gorm:"not null"`
	Nickname   string          `json:"nickname"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	ShirtNum   int             `json:"shirt_num"`
	MonthlyFee decimal.Decimal `json:"monthly_fee" gorm:"type:numeric(10,2)"`
	JoinDate   *time.Time      `json:"join_date"`
	Status     string          `json:"status" gorm:"type:varchar(16);default:'ACTIVE';index"`
}
