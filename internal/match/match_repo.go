package match

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository defines the interface for match data operations
type MatchRepository interface {
	CreateMatch(match *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetMatchesByTeam(teamID uint, page, limit int) ([]Match, int64, error)
	UpdateMatch(match *Match) error
	DeleteMatch(id uint) error
	UpsertStat(stat *MatchStat) error
	GetStatsByMatch(matchID uint) ([]MatchStat, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) CreateMatch(match *Match) error {
	return r.db.Create(match).Error
}

func (r *matchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) GetMatchesByTeam(teamID uint, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("team_id = ?", teamID)
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("played_at desc").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) UpdateMatch(match *Match) error {
	return r.db.Save(match).Error
}

func (r *matchRepository) DeleteMatch(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", id).Delete(&MatchStat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Match{}, id).Error
	})
}

func (r *matchRepository) UpsertStat(stat *MatchStat) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "player_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"goals", "assists", "yellow", "red", "played", "updated_at"}),
	}).Create(stat).Error
}

func (r *matchRepository) GetStatsByMatch(matchID uint) ([]MatchStat, error) {
	var stats []MatchStat
	if err := r.db.Where("match_id = ?", matchID).Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
