package dunning

import (
	"net/http"
	"strconv"
	"time"

	"github.com/andrefarias-dev/mensalista/pkg/responses"
	"github.com/gin-gonic/gin"
)

// DunningController exposes the sweep and backfill operations to the admin API.
type DunningController struct {
	sweeper *Sweeper
	ledger  Ledger
}

// NewDunningController creates a new dunning controller.
func NewDunningController(sweeper *Sweeper, ledger Ledger) *DunningController {
	return &DunningController{sweeper: sweeper, ledger: ledger}
}

// RunSweep godoc
// @Summary Run the exact-day dunning sweep
// @Description Walks all active teams and emits the lifecycle milestones due today.
// @Tags Dunning
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Report} "Sweep completed"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/dunning/sweep [post]
func (dc *DunningController) RunSweep(c *gin.Context) {
	report, err := dc.sweeper.Run(time.Now())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Sweep failed: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Sweep completed", report)
}

// RunBackfill godoc
// @Summary Backfill missed dunning milestones
// @Description Bulk repair: records every milestone whose day has passed and was never logged, timestamped at the missed milestone date.
// @Tags Dunning
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Report} "Backfill completed"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/dunning/backfill [post]
func (dc *DunningController) RunBackfill(c *gin.Context) {
	report, err := dc.sweeper.Backfill(time.Now())
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Backfill failed: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Backfill completed", report)
}

// GetUserLogs godoc
// @Summary List lifecycle events for a user
// @Tags Dunning
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=[]UserLog} "Events"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /admin/dunning/users/{user_id}/logs [get]
func (dc *DunningController) GetUserLogs(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID")
		return
	}
	logs, err := dc.ledger.ListUserLogs(uint(userID))
	if err != nil {
		responses.SendError(c, http.StatusInternalServerError, "Failed to load user logs")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", logs)
}
