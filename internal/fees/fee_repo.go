package fees

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RosterEntry is the slice of player state fee operations need. Read straight
// from the players table to keep this package free of roster dependencies.
type RosterEntry struct {
	ID         uint            `gorm:"column:id"`
	Name       string          `gorm:"column:name"`
	MonthlyFee decimal.Decimal `gorm:"column:monthly_fee"`
	JoinDate   *time.Time      `gorm:"column:join_date"`
}

// FeeRepository defines the interface for fee data operations
type FeeRepository interface {
	GetConfig(teamID uint) (*MonthlyFeeConfig, error)
	UpsertConfig(cfg *MonthlyFeeConfig) error

	IsTeamOwner(teamID, userID uint) (bool, error)
	PlayerInTeam(playerID, teamID uint) (bool, error)
	PaymentInTeam(paymentID, teamID uint) (bool, error)
	DebtInTeam(debtID, teamID uint) (bool, error)

	ActiveRoster(teamID uint) ([]RosterEntry, error)
	GetPlayerPeriodRows(playerID uint, p Period) ([]Payment, []MonthlyFeeException, error)
	GetTeamPeriodRows(teamID uint, p Period) (map[uint][]Payment, map[uint][]MonthlyFeeException, error)

	GeneratePayments(teamID uint, p Period) (int, error)
	GetPaymentByID(id uint) (*Payment, error)
	MarkPaid(paymentID uint, when time.Time) (*Payment, error)
	MarkUnpaid(paymentID uint) (*Payment, error)

	UpsertException(ex *MonthlyFeeException) error
	DeleteException(playerID uint, p Period) error

	CreateDebt(debt *HistoricalDebt) error
	ListDebts(playerID uint) ([]HistoricalDebt, error)
	SettleDebt(debtID uint) error
	OutstandingTotal(playerID uint) (decimal.Decimal, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository creates a new instance of FeeRepository
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) GetConfig(teamID uint) (*MonthlyFeeConfig, error) {
	var cfg MonthlyFeeConfig
	if err := r.db.Where("team_id = ?", teamID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *feeRepository) UpsertConfig(cfg *MonthlyFeeConfig) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "due_day", "is_active", "updated_at"}),
	}).Create(cfg).Error
}

func (r *feeRepository) IsTeamOwner(teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("team_users").
		Where("team_id = ? AND user_id = ? AND role = ?", teamID, userID, "owner").
		Count(&count).Error
	return count > 0, err
}

func (r *feeRepository) PlayerInTeam(playerID, teamID uint) (bool, error) {
	var count int64
	err := r.db.Table("players").
		Where("id = ? AND team_id = ? AND deleted_at IS NULL", playerID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *feeRepository) PaymentInTeam(paymentID, teamID uint) (bool, error) {
	var count int64
	err := r.db.Table("payments").
		Joins("JOIN players ON players.id = payments.player_id").
		Where("payments.id = ? AND players.team_id = ?", paymentID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *feeRepository) DebtInTeam(debtID, teamID uint) (bool, error) {
	var count int64
	err := r.db.Table("historical_debts").
		Joins("JOIN players ON players.id = historical_debts.player_id").
		Where("historical_debts.id = ? AND players.team_id = ?", debtID, teamID).
		Count(&count).Error
	return count > 0, err
}

func (r *feeRepository) ActiveRoster(teamID uint) ([]RosterEntry, error) {
	var roster []RosterEntry
	err := r.db.Table("players").
		Select("id, name, monthly_fee, join_date").
		Where("team_id = ? AND status = ? AND deleted_at IS NULL", teamID, "ACTIVE").
		Order("name asc").
		Scan(&roster).Error
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *feeRepository) GetPlayerPeriodRows(playerID uint, p Period) ([]Payment, []MonthlyFeeException, error) {
	var payments []Payment
	if err := r.db.Where("player_id = ? AND month = ? AND year = ?", playerID, p.Month, p.Year).Find(&payments).Error; err != nil {
		return nil, nil, err
	}
	var exceptions []MonthlyFeeException
	if err := r.db.Where("player_id = ? AND month = ? AND year = ?", playerID, p.Month, p.Year).Find(&exceptions).Error; err != nil {
		return nil, nil, err
	}
	return payments, exceptions, nil
}

func (r *feeRepository) GetTeamPeriodRows(teamID uint, p Period) (map[uint][]Payment, map[uint][]MonthlyFeeException, error) {
	var payments []Payment
	err := r.db.
		Joins("JOIN players ON players.id = payments.player_id").
		Where("players.team_id = ? AND payments.month = ? AND payments.year = ?", teamID, p.Month, p.Year).
		Find(&payments).Error
	if err != nil {
		return nil, nil, err
	}

	var exceptions []MonthlyFeeException
	err = r.db.
		Joins("JOIN players ON players.id = monthly_fee_exceptions.player_id").
		Where("players.team_id = ? AND monthly_fee_exceptions.month = ? AND monthly_fee_exceptions.year = ?", teamID, p.Month, p.Year).
		Find(&exceptions).Error
	if err != nil {
		return nil, nil, err
	}

	paymentsByPlayer := make(map[uint][]Payment, len(payments))
	for _, row := range payments {
		paymentsByPlayer[row.PlayerID] = append(paymentsByPlayer[row.PlayerID], row)
	}
	exceptionsByPlayer := make(map[uint][]MonthlyFeeException, len(exceptions))
	for _, row := range exceptions {
		exceptionsByPlayer[row.PlayerID] = append(exceptionsByPlayer[row.PlayerID], row)
	}
	return paymentsByPlayer, exceptionsByPlayer, nil
}

// GeneratePayments batch-creates PENDING rows for the period. Existing
// (player, month, year) rows and fully exempt players are skipped, so the
// operation is safe to re-run.
func (r *feeRepository) GeneratePayments(teamID uint, p Period) (int, error) {
	cfg, err := r.GetConfig(teamID)
	if err != nil {
		return 0, err
	}
	dueDay := DefaultDueDay
	amount := decimal.Zero
	if cfg != nil {
		dueDay = cfg.DueDay
		amount = cfg.Amount
	}

	roster, err := r.ActiveRoster(teamID)
	if err != nil {
		return 0, err
	}
	_, exceptionsByPlayer, err := r.GetTeamPeriodRows(teamID, p)
	if err != nil {
		return 0, err
	}

	dueDate := p.DueDate(dueDay, time.UTC)
	created := 0
	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range roster {
			ctx := PlayerFeeContext{
				Exceptions: exceptionsByPlayer[entry.ID],
				MonthlyFee: playerFee(entry, amount),
				Period:     p,
			}
			if len(ctx.Exceptions) == 1 && ctx.Exceptions[0].IsExempt {
				continue
			}
			fee, err := EffectiveFee(ctx)
			if err != nil {
				return err
			}

			payment := Payment{
				PlayerID: entry.ID,
				Month:    p.Month,
				Year:     p.Year,
				Amount:   fee,
				Status:   StatusPending,
				DueDate:  dueDate,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "player_id"}, {Name: "month"}, {Name: "year"}},
				DoNothing: true,
			}).Create(&payment)
			if res.Error != nil {
				return res.Error
			}
			created += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// playerFee prefers the player's own fee; a zero fee falls back to the team
// default from config.
func playerFee(entry RosterEntry, teamDefault decimal.Decimal) decimal.Decimal {
	if entry.MonthlyFee.IsPositive() {
		return entry.MonthlyFee
	}
	return teamDefault
}

func (r *feeRepository) GetPaymentByID(id uint) (*Payment, error) {
	var payment Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// markPaid mutates p to PAID and returns the ledger entry to write. A payment
// that is already PAID returns nil: a double submit must not add a second
// payment transaction.
func markPaid(p *Payment, when time.Time) *Transaction {
	if p.Status == StatusPaid {
		return nil
	}
	p.Status = StatusPaid
	p.PaymentDate = &when
	return &Transaction{
		Reference: uuid.NewString(),
		PlayerID:  p.PlayerID,
		PaymentID: p.ID,
		Type:      TransactionPayment,
		Amount:    p.Amount,
	}
}

// markUnpaid reverts p to PENDING and returns the reversal entry. Only a PAID
// payment has a flow to reverse; anything else is a no-op.
func markUnpaid(p *Payment) *Transaction {
	if p.Status != StatusPaid {
		return nil
	}
	p.Status = StatusPending
	p.PaymentDate = nil
	return &Transaction{
		Reference: uuid.NewString(),
		PlayerID:  p.PlayerID,
		PaymentID: p.ID,
		Type:      TransactionReversal,
		Amount:    p.Amount.Neg(),
	}
}

// MarkPaid sets the payment PAID and writes the derived ledger transaction
// in the same database transaction.
func (r *feeRepository) MarkPaid(paymentID uint, when time.Time) (*Payment, error) {
	var payment Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			return err
		}
		entry := markPaid(&payment, when)
		if entry == nil {
			return nil
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// MarkUnpaid reverts a payment to PENDING and writes a reversal transaction.
func (r *feeRepository) MarkUnpaid(paymentID uint) (*Payment, error) {
	var payment Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, paymentID).Error; err != nil {
			return err
		}
		entry := markUnpaid(&payment)
		if entry == nil {
			return nil
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *feeRepository) UpsertException(ex *MonthlyFeeException) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_exempt", "amount", "reason", "updated_at"}),
	}).Create(ex).Error
}

func (r *feeRepository) DeleteException(playerID uint, p Period) error {
	return r.db.Where("player_id = ? AND month = ? AND year = ?", playerID, p.Month, p.Year).
		Delete(&MonthlyFeeException{}).Error
}

func (r *feeRepository) CreateDebt(debt *HistoricalDebt) error {
	return r.db.Create(debt).Error
}

func (r *feeRepository) ListDebts(playerID uint) ([]HistoricalDebt, error) {
	var debts []HistoricalDebt
	if err := r.db.Where("player_id = ?", playerID).Order("year asc, month asc").Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

func (r *feeRepository) SettleDebt(debtID uint) error {
	return r.db.Model(&HistoricalDebt{}).Where("id = ?", debtID).Update("settled", true).Error
}

// OutstandingTotal sums unpaid payments and unsettled historical debts with
// exact decimal arithmetic.
func (r *feeRepository) OutstandingTotal(playerID uint) (decimal.Decimal, error) {
	var payments []Payment
	if err := r.db.Where("player_id = ? AND status <> ?", playerID, StatusPaid).Find(&payments).Error; err != nil {
		return decimal.Zero, err
	}
	var debts []HistoricalDebt
	if err := r.db.Where("player_id = ? AND settled = ?", playerID, false).Find(&debts).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	for _, d := range debts {
		total = total.Add(d.Amount)
	}
	return total, nil
}
