package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	CreateTeam(team *Team, ownerID uint) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamsByOwner(ownerID uint, page, limit int) ([]Team, int64, error)
	GetAllTeamsAdmin(page, limit int, includeExcluded bool) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	SetStatus(id uint, status string) error
	DeleteTeam(id uint) error
	GetOwnerID(teamID uint) (uint, error)
	IsOwner(teamID, userID uint) (bool, error)
	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// CreateTeam creates the team row and its owner join in one transaction.
func (r *teamRepository) CreateTeam(team *Team, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Create(&TeamUser{TeamID: team.ID, UserID: ownerID, Role: RoleOwner}).Error
	})
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamsByOwner(ownerID uint, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).
		Joins("JOIN team_users ON team_users.team_id = teams.id").
		Where("team_users.user_id = ? AND team_users.role = ? AND teams.status <> ?", ownerID, RoleOwner, StatusExcluido)

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("teams.created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) GetAllTeamsAdmin(page, limit int, includeExcluded bool) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if !includeExcluded {
		query = query.Where("status <> ?", StatusExcluido)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) SetStatus(id uint, status string) error {
	return r.db.Model(&Team{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteTeam marks a team EXCLUIDO; rows stay behind for reporting.
func (r *teamRepository) DeleteTeam(id uint) error {
	return r.SetStatus(id, StatusExcluido)
}

func (r *teamRepository) GetOwnerID(teamID uint) (uint, error) {
	var join TeamUser
	if err := r.db.Where("team_id = ? AND role = ?", teamID, RoleOwner).First(&join).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return join.UserID, nil
}

func (r *teamRepository) IsOwner(teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamUser{}).
		Where("team_id = ? AND user_id = ? AND role = ?", teamID, userID, RoleOwner).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &teamRepository{db: tx}
		return txFunc(txRepo)
	})
}
