package match

import (
	"net/http"
	"strconv"
	"time"

	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/internal/team"
	"github.com/andrefarias-dev/mensalista/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MatchController handles match-tracking HTTP requests
type MatchController struct {
	repo     MatchRepository
	teamRepo team.TeamRepository
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, teamRepo team.TeamRepository) *MatchController {
	return &MatchController{repo: repo, teamRepo: teamRepo}
}

type CreateMatchRequest struct {
	Opponent     string `json:"opponent" binding:"required,max=100"`
	Location     string `json:"location"`
	PlayedAt     string `json:"played_at" binding:"required"` // RFC3339
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Notes        string `json:"notes" binding:"max=1000"`
}

type StatRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	Goals    int  `json:"goals"`
	Assists  int  `json:"assists"`
	Yellow   int  `json:"yellow_cards"`
	Red      int  `json:"red_cards"`
	Played   bool `json:"played"`
}

// CreateMatch godoc
// @Summary Record a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param match body CreateMatchRequest true "Match data"
// @Success 201 {object} responses.SuccessResponse{data=Match}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	teamID, ok := mc.ownedTeamID(c)
	if !ok {
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	playedAt, err := time.Parse(time.RFC3339, req.PlayedAt)
	if err != nil {
		responses.BadRequest(c, "played_at must be RFC3339")
		return
	}

	m := Match{
		TeamID:       teamID,
		Opponent:     req.Opponent,
		Location:     req.Location,
		PlayedAt:     playedAt,
		GoalsFor:     req.GoalsFor,
		GoalsAgainst: req.GoalsAgainst,
		Notes:        req.Notes,
	}
	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.InternalServerError(c, "Failed to create match")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", m)
}

// GetTeamMatches godoc
// @Summary List a team's matches
// @Tags Matches
// @Produce json
// @Param team_id path int true "Team ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Match}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/matches [get]
func (mc *MatchController) GetTeamMatches(c *gin.Context) {
	teamID, ok := mc.ownedTeamID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	matches, total, err := mc.repo.GetMatchesByTeam(teamID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to load matches")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", matches, total, page, limit)
}

// UpsertStat godoc
// @Summary Record a player's stat line for a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param match_id path int true "Match ID"
// @Param stat body StatRequest true "Stat line"
// @Success 200 {object} responses.SuccessResponse{data=MatchStat}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/matches/{match_id}/stats [post]
func (mc *MatchController) UpsertStat(c *gin.Context) {
	m, ok := mc.ownedMatch(c)
	if !ok {
		return
	}

	var req StatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	stat := MatchStat{
		MatchID:  m.ID,
		PlayerID: req.PlayerID,
		Goals:    req.Goals,
		Assists:  req.Assists,
		Yellow:   req.Yellow,
		Red:      req.Red,
		Played:   req.Played,
	}
	if err := mc.repo.UpsertStat(&stat); err != nil {
		responses.InternalServerError(c, "Failed to save stat line")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Stat line saved", stat)
}

// GetMatchStats godoc
// @Summary List stat lines for a match
// @Tags Matches
// @Produce json
// @Param team_id path int true "Team ID"
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=[]MatchStat}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/matches/{match_id}/stats [get]
func (mc *MatchController) GetMatchStats(c *gin.Context) {
	m, ok := mc.ownedMatch(c)
	if !ok {
		return
	}
	stats, err := mc.repo.GetStatsByMatch(m.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load stats")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", stats)
}

// DeleteMatch godoc
// @Summary Delete a match and its stat lines
// @Tags Matches
// @Produce json
// @Param team_id path int true "Team ID"
// @Param match_id path int true "Match ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/matches/{match_id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	m, ok := mc.ownedMatch(c)
	if !ok {
		return
	}
	if err := mc.repo.DeleteMatch(m.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete match")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match deleted successfully", nil)
}

// --- helpers ---

func (mc *MatchController) ownedTeamID(c *gin.Context) (uint, bool) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return 0, false
	}
	id, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return 0, false
	}
	isOwner, err := mc.teamRepo.IsOwner(uint(id), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify ownership")
		return 0, false
	}
	if !isOwner {
		responses.Forbidden(c, "Only the team owner can manage matches")
		return 0, false
	}
	return uint(id), true
}

func (mc *MatchController) ownedMatch(c *gin.Context) (*Match, bool) {
	teamID, ok := mc.ownedTeamID(c)
	if !ok {
		return nil, false
	}
	matchID, err := strconv.ParseUint(c.Param("match_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid match ID")
		return nil, false
	}
	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.InternalServerError(c, "Failed to load match")
		return nil, false
	}
	if m == nil || m.TeamID != teamID {
		responses.NotFound(c, "Match")
		return nil, false
	}
	return m, true
}
