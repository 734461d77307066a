package team

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/andrefarias-dev/mensalista/internal/dunning"
	"github.com/andrefarias-dev/mensalista/internal/fees"
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	repo   TeamRepository
	ledger dunning.Ledger
	db     *gorm.DB
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, ledger dunning.Ledger, db *gorm.DB) *TeamController {
	return &TeamController{repo: repo, ledger: ledger, db: db}
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=1000"`
	Logo        string `json:"logo"`
	Sport       string `json:"sport"`
	MonthlyFee  string `json:"monthly_fee" binding:"required"`
	DueDay      int    `json:"due_day" binding:"omitempty,gte=1,lte=31"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Logo        *string `json:"logo"`
	Sport       *string `json:"sport"`
}

// --- Handlers ---

// CreateTeam godoc
// @Summary Create a new team
// @Description Creates a team owned by the authenticated user, seeds its monthly fee config and fires the one-shot welcome event.
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} responses.SuccessResponse{data=Team} "Team created successfully"
// @Failure 400 {object} responses.ErrorResponse "Invalid input"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 500 {object} responses.ErrorResponse "Internal server error"
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	fee, err := decimal.NewFromString(req.MonthlyFee)
	if err != nil || fee.IsNegative() {
		responses.BadRequest(c, "monthly_fee must be a non-negative decimal")
		return
	}
	dueDay := req.DueDay
	if dueDay == 0 {
		dueDay = fees.DefaultDueDay
	}

	team := Team{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Sport:       req.Sport,
		Status:      StatusActive,
	}
	if err := tc.repo.CreateTeam(&team, userID); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}

	cfg := fees.MonthlyFeeConfig{TeamID: team.ID, Amount: fee, DueDay: dueDay, IsActive: true}
	if err := tc.db.Create(&cfg).Error; err != nil {
		responses.InternalServerError(c, "Failed to create fee config")
		return
	}

	// Welcome is a creation-time one-shot; a lost insert race means another
	// request already recorded it.
	if _, err := tc.ledger.RecordOnce(userID, dunning.WelcomeEvent(time.Now()), dunning.LogTypeAutomatic); err != nil {
		log.Printf("team: welcome event for user %d: %v", userID, err)
	}

	responses.SendSuccess(c, http.StatusCreated, "Team created successfully", team)
}

// GetTeamByID godoc
// @Summary Get a team
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 404 {object} responses.ErrorResponse "Team not found"
// @Router /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, ok := parseTeamID(c)
	if !ok {
		return
	}
	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	if team == nil || team.Status == StatusExcluido {
		responses.NotFound(c, "Team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// GetMyTeams godoc
// @Summary List teams owned by the authenticated user
// @Tags Teams
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /users/me/teams [get]
func (tc *TeamController) GetMyTeams(c *gin.Context) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	page, limit := pagination(c)
	teams, total, err := tc.repo.GetTeamsByOwner(userID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to load teams")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [put]
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	if req.Logo != nil {
		team.Logo = *req.Logo
	}
	if req.Sport != nil {
		team.Sport = *req.Sport
	}

	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated successfully", team)
}

// DeleteTeam godoc
// @Summary Delete a team
// @Description Marks the team EXCLUIDO; data is retained for reporting.
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Not the team owner"
// @Security ApiKeyAuth
// @Router /teams/{team_id} [delete]
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}
	if err := tc.repo.DeleteTeam(team.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// PauseTeam godoc
// @Summary Pause a team
// @Description Paused teams are skipped by the dunning sweep.
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/pause [post]
func (tc *TeamController) PauseTeam(c *gin.Context) {
	tc.transition(c, StatusPaused, "Team paused")
}

// ResumeTeam godoc
// @Summary Resume a paused team
// @Tags Teams
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/resume [post]
func (tc *TeamController) ResumeTeam(c *gin.Context) {
	tc.transition(c, StatusActive, "Team resumed")
}

// AdminGetAllTeams godoc
// @Summary List all teams (admin)
// @Tags Teams
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param include_excluded query bool false "Include EXCLUIDO teams"
// @Success 200 {object} responses.PaginatedResponse{data=[]Team}
// @Security ApiKeyAuth
// @Router /admin/teams [get]
func (tc *TeamController) AdminGetAllTeams(c *gin.Context) {
	page, limit := pagination(c)
	includeExcluded := c.Query("include_excluded") == "true"
	teams, total, err := tc.repo.GetAllTeamsAdmin(page, limit, includeExcluded)
	if err != nil {
		responses.InternalServerError(c, "Failed to load teams")
		return
	}
	responses.SendPaginated(c, http.StatusOK, "", teams, total, page, limit)
}

// --- helpers ---

func (tc *TeamController) transition(c *gin.Context, status, message string) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}
	if err := tc.repo.SetStatus(team.ID, status); err != nil {
		responses.InternalServerError(c, "Failed to update team status")
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, nil)
}

// ownedTeam loads the team from the path and checks the caller owns it.
func (tc *TeamController) ownedTeam(c *gin.Context) (*Team, bool) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return nil, false
	}
	teamID, ok := parseTeamID(c)
	if !ok {
		return nil, false
	}
	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load team")
		return nil, false
	}
	if team == nil || team.Status == StatusExcluido {
		responses.NotFound(c, "Team")
		return nil, false
	}
	isOwner, err := tc.repo.IsOwner(teamID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify ownership")
		return nil, false
	}
	if !isOwner {
		responses.Forbidden(c, "Only the team owner can do this")
		return nil, false
	}
	return team, true
}

func parseTeamID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid team ID")
		return 0, false
	}
	return uint(id), true
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
