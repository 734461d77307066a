package match

import (
	"time"

	"gorm.io/gorm"
)

// Match is one fixture played or scheduled by a team.
type Match struct {
	gorm.Model
	TeamID       uint      `json:"team_id" gorm:"index;not null"`
	Opponent     string    `json:"opponent" gorm:"not null"`
	Location     string    `json:"location"`
	PlayedAt     time.Time `json:"played_at"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
	Notes        string    `json:"notes"`
}

// MatchStat is one player's line for one match.
type MatchStat struct {
	gorm.Model
	MatchID  uint `json:"match_id" gorm:"index;uniqueIndex:idx_match_player"`
	PlayerID uint `json:"player_id" gorm:"index;uniqueIndex:idx_match_player"`
	Goals    int  `json:"goals"`
	Assists  int  `json:"assists"`
	Yellow   int  `json:"yellow_cards"`
	Red      int  `json:"red_cards"`
	Played   bool `json:"played" gorm:"default:true"`
}
