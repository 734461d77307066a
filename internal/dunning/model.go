package dunning

import "gorm.io/gorm"

const (
	LogTypeAutomatic = "automatic"
	LogTypeManual    = "manual"
)

// UserLog is the append-only lifecycle ledger. The unique index on
// (user_id, action) is what guarantees each milestone fires at most once per
// team lifetime, including across concurrent sweeps.
type UserLog struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index;uniqueIndex:idx_user_log_user_action"`
	Action  Action `json:"action" gorm:"type:varchar(40);uniqueIndex:idx_user_log_user_action"`
	Type    string `json:"type" gorm:"type:varchar(16);default:'automatic'"`
	Details string `json:"details"`
}
