package player

import (
	"errors"

	"github.com/andrefarias-dev/mensalista/internal/fees"
	"github.com/andrefarias-dev/mensalista/internal/match"
	"gorm.io/gorm"
)

// PlayerRepository defines the interface for roster data operations
type PlayerRepository interface {
	CreatePlayer(player *Player) error
	GetPlayerByID(id uint) (*Player, error)
	GetPlayersByTeam(teamID uint, page, limit int, activeOnly bool) ([]Player, int64, error)
	UpdatePlayer(player *Player) error
	DeletePlayer(id uint) error
	SetStatus(id uint, status string) error
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new instance of PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) CreatePlayer(player *Player) error {
	return r.db.Create(player).Error
}

func (r *playerRepository) GetPlayerByID(id uint) (*Player, error) {
	var p Player
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) GetPlayersByTeam(teamID uint, page, limit int, activeOnly bool) ([]Player, int64, error) {
	var players []Player
	var total int64

	query := r.db.Model(&Player{}).Where("team_id = ?", teamID)
	if activeOnly {
		query = query.Where("status = ?", StatusActive)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&players).Error; err != nil {
		return nil, 0, err
	}
	return players, total, nil
}

func (r *playerRepository) UpdatePlayer(player *Player) error {
	return r.db.Save(player).Error
}

// DeletePlayer removes the player and cascades payments, exceptions, debts
// and match stats in one transaction.
func (r *playerRepository) DeletePlayer(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", id).Delete(&fees.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", id).Delete(&fees.MonthlyFeeException{}).Error; err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", id).Delete(&fees.HistoricalDebt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", id).Delete(&match.MatchStat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Player{}, id).Error
	})
}

func (r *playerRepository) SetStatus(id uint, status string) error {
	return r.db.Model(&Player{}).Where("id = ?", id).Update("status", status).Error
}
