package team

import (
	"gorm.io/gorm"
)

// Team lifecycle statuses. EXCLUIDO marks a team removed by its owner; the
// row is kept for reporting.
const (
	StatusActive   = "ACTIVE"
	StatusPaused   = "PAUSED"
	StatusBlocked  = "BLOCKED"
	StatusOverdue  = "OVERDUE"
	StatusExcluido = "EXCLUIDO"
)

// Team is one club managed by an owner account.
type Team struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Sport       string `json:"sport" gorm:"index"`
	Status      string `json:"status" gorm:"type:varchar(16);default:'ACTIVE';index"`
}

// TeamUser links an account to a team with a role. Each team has exactly one
// owner row.
type TeamUser struct {
	gorm.Model
	TeamID uint   `json:"team_id" gorm:"index;uniqueIndex:idx_team_user"`
	UserID uint   `json:"user_id" gorm:"index;uniqueIndex:idx_team_user"`
	Role   string `json:"role" gorm:"default:'owner'"`
}

const (
	RoleOwner  = "owner"
	RoleStaff  = "staff"
	RoleViewer = "viewer"
)
