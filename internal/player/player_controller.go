package player

import (
	"net/http"
	"strconv"
	"time"

	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/internal/team"
	"github.com/andrefarias-dev/mensalista/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PlayerController handles roster HTTP requests
type PlayerController struct {
	repo     PlayerRepository
	teamRepo team.TeamRepository
}

// NewPlayerController creates a new player controller
func NewPlayerController(repo PlayerRepository, teamRepo team.TeamRepository) *PlayerController {
	return &PlayerController{repo: repo, teamRepo: teamRepo}
}

type CreatePlayerRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Nickname   string `json:"nickname" binding:"max=50"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	ShirtNum   int    `json:"shirt_num"`
	MonthlyFee string `json:"monthly_fee"`
	JoinDate   string `json:"join_date"` // YYYY-MM-DD
}

type UpdatePlayerRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=2,max=100"`
	Nickname   *string `json:"nickname" binding:"omitempty,max=50"`
	Phone      *string `json:"phone"`
	Position   *string `json:"position"`
	ShirtNum   *int    `json:"shirt_num"`
	MonthlyFee *string `json:"monthly_fee"`
	Status     *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// CreatePlayer godoc
// @Summary Add a player to a team roster
// @Tags Players
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player body CreatePlayerRequest true "Player data"
// @Success 201 {object} responses.SuccessResponse{data=Player}
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players [post]
func (pc *PlayerController) CreatePlayer(c *gin.Context) {
	teamID, ok := pc.ownedTeamID(c)
	if !ok {
		return
	}

	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	fee := decimal.Zero
	if req.MonthlyFee != "" {
		var err error
		fee, err = decimal.NewFromString(req.MonthlyFee)
		if err != nil || fee.IsNegative() {
			responses.BadRequest(c, "monthly_fee must be a non-negative decimal")
			return
		}
	}

	var joinDate *time.Time
	if req.JoinDate != "" {
		d, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			responses.BadRequest(c, "join_date must be YYYY-MM-DD")
			return
		}
		joinDate = &d
	}

	p := Player{
		TeamID:     teamID,
		Name:       req.Name,
		Nickname:   req.Nickname,
		Phone:      req.Phone,
		Position:   req.Position,
		ShirtNum:   req.ShirtNum,
		MonthlyFee: fee,
		JoinDate:   joinDate,
		Status:     StatusActive,
	}
	if err := pc.repo.CreatePlayer(&p); err != nil {
		responses.InternalServerError(c, "Failed to create player")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player created successfully", p)
}

// GetTeamPlayers godoc
// @Summary List a team's roster
// @Tags Players
// @Produce json
// @Param team_id path int true "Team ID"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param active_only query bool false "Only ACTIVE players"
// @Success 200 {object} responses.PaginatedResponse{data=[]Player}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players [get]
func (pc *PlayerController) GetTeamPlayers(c *gin.Context) {
	teamID, ok := pc.ownedTeamID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)
	activeOnly := c.Query("active_only") == "true"
	players, total, err := pc.repo.GetPlayersByTeam(teamID, page, limit, activeOnly)
	if err != nil {
		responses.InternalServerError(c, "Failed to load players")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", players, total, page, limit)
}

// UpdatePlayer godoc
// @Summary Update a roster entry
// @Tags Players
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Param player body UpdatePlayerRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Player}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id} [put]
func (pc *PlayerController) UpdatePlayer(c *gin.Context) {
	p, ok := pc.ownedPlayer(c)
	if !ok {
		return
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Nickname != nil {
		p.Nickname = *req.Nickname
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Position != nil {
		p.Position = *req.Position
	}
	if req.ShirtNum != nil {
		p.ShirtNum = *req.ShirtNum
	}
	if req.MonthlyFee != nil {
		fee, err := decimal.NewFromString(*req.MonthlyFee)
		if err != nil || fee.IsNegative() {
			responses.BadRequest(c, "monthly_fee must be a non-negative decimal")
			return
		}
		p.MonthlyFee = fee
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := pc.repo.UpdatePlayer(p); err != nil {
		responses.InternalServerError(c, "Failed to update player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player updated successfully", p)
}

// DeletePlayer godoc
// @Summary Remove a player
// @Description Deletes the player and cascades payments, exceptions, debts and match stats.
// @Tags Players
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id} [delete]
func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	p, ok := pc.ownedPlayer(c)
	if !ok {
		return
	}
	if err := pc.repo.DeletePlayer(p.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player deleted successfully", nil)
}

// --- helpers ---

func (pc *PlayerController) ownedTeamID(c *gin.Context) (uint, bool) {
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
	isOwner, err := pc.teamRepo.IsOwner(uint(id), userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify ownership")
		return 0, false
	}
	if !isOwner {
		responses.Forbidden(c, "Only the team owner can manage the roster")
		return 0, false
	}
	return uint(id), true
}

func (pc *PlayerController) ownedPlayer(c *gin.Context) (*Player, bool) {
	teamID, ok := pc.ownedTeamID(c)
	if !ok {
		return nil, false
	}
	playerID, err := strconv.ParseUint(c.Param("player_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid player ID")
		return nil, false
	}
	p, err := pc.repo.GetPlayerByID(uint(playerID))
	if err != nil {
		responses.InternalServerError(c, "Failed to load player")
		return nil, false
	}
	if p == nil || p.TeamID != teamID {
		responses.NotFound(c, "Player")
		return nil, false
	}
	return p, true
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
