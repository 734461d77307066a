package dunning

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is the persistence port for lifecycle events.
type Ledger interface {
	// ExistingActions returns the set of actions already recorded for a user.
	ExistingActions(userID uint) (ActionSet, error)

	// RecordOnce inserts the event if and only if no row exists for
	// (userID, action). It reports whether this call won the insert; losing
	// to a concurrent writer is a successful no-op, not an error.
	RecordOnce(userID uint, ev Event, logType string) (bool, error)

	// ListUserLogs returns a user's ledger rows in insertion order.
	ListUserLogs(userID uint) ([]UserLog, error)
}

// TeamContext is the slice of team state the sweep needs.
type TeamContext struct {
	TeamID    uint      `gorm:"column:team_id"`
	OwnerID   uint      `gorm:"column:owner_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Status    string    `gorm:"column:status"`
}

// TeamSource is the persistence port for the teams eligible for dunning.
type TeamSource interface {
	// ActiveTeams returns every ACTIVE team with a resolvable owner.
	ActiveTeams() ([]TeamContext, error)

	// AllTeams returns every non-deleted team with an owner, for backfill.
	AllTeams() ([]TeamContext, error)

	// SetTeamStatus applies a lifecycle status transition.
	SetTeamStatus(teamID uint, status string) error
}

type gormLedger struct {
	db *gorm.DB
}

// NewLedger creates a gorm-backed Ledger.
func NewLedger(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (l *gormLedger) ExistingActions(userID uint) (ActionSet, error) {
	var actions []Action
	if err := l.db.Model(&UserLog{}).Where("user_id = ?", userID).Pluck("action", &actions).Error; err != nil {
		return nil, err
	}
	return NewActionSet(actions...), nil
}

func (l *gormLedger) RecordOnce(userID uint, ev Event, logType string) (bool, error) {
	row := UserLog{
		UserID:  userID,
		Action:  ev.Action,
		Type:    logType,
		Details: ev.Details,
	}
	// Backfilled events carry the missed milestone date, not insertion time.
	row.CreatedAt = ev.Timestamp

	tx := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "action"}},
		DoNothing: true,
	}).Create(&row)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (l *gormLedger) ListUserLogs(userID uint) ([]UserLog, error) {
	var logs []UserLog
	if err := l.db.Where("user_id = ?", userID).Order("created_at asc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

type gormTeamSource struct {
	db *gorm.DB
}

// NewTeamSource creates a gorm-backed TeamSource.
func NewTeamSource(db *gorm.DB) TeamSource {
	return &gormTeamSource{db: db}
}

func (s *gormTeamSource) ActiveTeams() ([]TeamContext, error) {
	return s.teams("teams.status = ?", "ACTIVE")
}

func (s *gormTeamSource) AllTeams() ([]TeamContext, error) {
	return s.teams("teams.status <> ?", "EXCLUIDO")
}

func (s *gormTeamSource) teams(cond string, args ...interface{}) ([]TeamContext, error) {
	var rows []TeamContext
	err := s.db.Table("teams").
		Select("teams.id AS team_id, team_users.user_id AS owner_id, teams.created_at, teams.status").
		Joins("JOIN team_users ON team_users.team_id = teams.id AND team_users.role = ?", "owner").
		Where("teams.deleted_at IS NULL").
		Where(cond, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormTeamSource) SetTeamStatus(teamID uint, status string) error {
	return s.db.Table("teams").Where("id = ?", teamID).Update("status", status).Error
}
