package fees

import (
	"net/http"
	"strconv"
	"time"

	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FeeController handles monthly-fee HTTP requests. The owner dashboard and
// the shared read-only report go through the same resolver; there is exactly
// one implementation of the status rules.
type FeeController struct {
	repo FeeRepository
}

// NewFeeController creates a new fee controller
func NewFeeController(repo FeeRepository) *FeeController {
	return &FeeController{repo: repo}
}

// --- DTOs ---

type FeeConfigRequest struct {
	Amount   string `json:"amount" binding:"required"`
	DueDay   int    `json:"due_day" binding:"required,gte=1,lte=31"`
	IsActive *bool  `json:"is_active"`
}

type GenerateRequest struct {
	Month int `json:"month" binding:"required,gte=1,lte=12"`
	Year  int `json:"year" binding:"required,gte=2000,lte=2100"`
}

type ExceptionRequest struct {
	Month    int     `json:"month" binding:"required,gte=1,lte=12"`
	Year     int     `json:"year" binding:"required,gte=2000,lte=2100"`
	IsExempt bool    `json:"is_exempt"`
	Amount   *string `json:"amount"`
	Reason   string  `json:"reason" binding:"max=500"`
}

type DebtRequest struct {
	Month       int    `json:"month" binding:"required,gte=1,lte=12"`
	Year        int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// --- Config ---

// GetFeeConfig godoc
// @Summary Get a team's fee config
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Success 200 {object} responses.SuccessResponse{data=MonthlyFeeConfig}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/fees/config [get]
func (fc *FeeController) GetFeeConfig(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	cfg, err := fc.repo.GetConfig(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load fee config")
		return
	}
	if cfg == nil {
		responses.NotFound(c, "Fee config")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", cfg)
}

// UpdateFeeConfig godoc
// @Summary Create or update a team's fee config
// @Tags Fees
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param config body FeeConfigRequest true "Fee config"
// @Success 200 {object} responses.SuccessResponse{data=MonthlyFeeConfig}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/fees/config [put]
func (fc *FeeController) UpdateFeeConfig(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}

	var req FeeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		responses.BadRequest(c, "amount must be a non-negative decimal")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	cfg := MonthlyFeeConfig{TeamID: teamID, Amount: amount, DueDay: req.DueDay, IsActive: isActive}
	if err := fc.repo.UpsertConfig(&cfg); err != nil {
		responses.InternalServerError(c, "Failed to save fee config")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Fee config saved", cfg)
}

// --- Payment generation & toggling ---

// GeneratePayments godoc
// @Summary Generate the month's pending payments for a team
// @Description Idempotent batch: existing rows and exempt players are skipped.
// @Tags Fees
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param period body GenerateRequest true "Billing period"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/fees/generate [post]
func (fc *FeeController) GeneratePayments(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	created, err := fc.repo.GeneratePayments(teamID, Period{Month: req.Month, Year: req.Year})
	if err != nil {
		responses.InternalServerError(c, "Failed to generate payments")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payments generated", gin.H{"created": created})
}

// MarkPaid godoc
// @Summary Mark a payment as paid
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} responses.SuccessResponse{data=Payment}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/payments/{payment_id}/pay [post]
func (fc *FeeController) MarkPaid(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	paymentID, ok := fc.teamPaymentID(c, teamID)
	if !ok {
		return
	}
	payment, err := fc.repo.MarkPaid(paymentID, time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to mark payment as paid")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment marked as paid", payment)
}

// MarkUnpaid godoc
// @Summary Revert a payment to pending
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} responses.SuccessResponse{data=Payment}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/payments/{payment_id}/unpay [post]
func (fc *FeeController) MarkUnpaid(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	paymentID, ok := fc.teamPaymentID(c, teamID)
	if !ok {
		return
	}
	payment, err := fc.repo.MarkUnpaid(paymentID)
	if err != nil {
		responses.InternalServerError(c, "Failed to revert payment")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment reverted to pending", payment)
}

// --- Reports ---

// TeamFeeReport godoc
// @Summary Owner dashboard: resolved fee standing for the whole roster
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param month query int false "Month (defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} responses.SuccessResponse{data=TeamReport}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/fees/report [get]
func (fc *FeeController) TeamFeeReport(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	fc.sendReport(c, teamID)
}

// SharedTeamFeeReport godoc
// @Summary Shared read-only fee report
// @Description Same resolver as the owner dashboard, exposed without authentication for the team's shared link.
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param month query int false "Month (defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} responses.SuccessResponse{data=TeamReport}
// @Router /public/teams/{team_id}/fees/report [get]
func (fc *FeeController) SharedTeamFeeReport(c *gin.Context) {
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return
	}
	fc.sendReport(c, teamID)
}

func (fc *FeeController) sendReport(c *gin.Context, teamID uint) {
	now := time.Now()
	p := PeriodOf(now)
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			responses.BadRequest(c, "month must be 1-12")
			return
		}
		p.Month = month
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 2000 || year > 2100 {
			responses.BadRequest(c, "year must be 2000-2100")
			return
		}
		p.Year = year
	}

	cfg, err := fc.repo.GetConfig(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load fee config")
		return
	}
	dueDay := DefaultDueDay
	teamDefault := decimal.Zero
	if cfg != nil && cfg.IsActive {
		dueDay = cfg.DueDay
		teamDefault = cfg.Amount
	}

	roster, err := fc.repo.ActiveRoster(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load roster")
		return
	}
	paymentsByPlayer, exceptionsByPlayer, err := fc.repo.GetTeamPeriodRows(teamID, p)
	if err != nil {
		responses.InternalServerError(c, "Failed to load fee rows")
		return
	}

	report := BuildTeamReport(teamID, p, dueDay, teamDefault, roster, paymentsByPlayer, exceptionsByPlayer, now)
	responses.SendSuccess(c, http.StatusOK, "", report)
}

// --- Exceptions ---

// UpsertException godoc
// @Summary Set a per-month fee exception for a player
// @Tags Fees
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Param exception body ExceptionRequest true "Exception"
// @Success 200 {object} responses.SuccessResponse{data=MonthlyFeeException}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id}/exceptions [put]
func (fc *FeeController) UpsertException(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	playerID, ok := fc.teamPlayerID(c, teamID)
	if !ok {
		return
	}

	var req ExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	ex := MonthlyFeeException{
		PlayerID: playerID,
		Month:    req.Month,
		Year:     req.Year,
		IsExempt: req.IsExempt,
		Reason:   req.Reason,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil || amount.IsNegative() {
			responses.BadRequest(c, "amount must be a non-negative decimal")
			return
		}
		ex.Amount = &amount
	}

	if err := fc.repo.UpsertException(&ex); err != nil {
		responses.InternalServerError(c, "Failed to save exception")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Exception saved", ex)
}

// DeleteException godoc
// @Summary Remove a player's fee exception for a month
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Param month query int true "Month"
// @Param year query int true "Year"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id}/exceptions [delete]
func (fc *FeeController) DeleteException(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	playerID, ok := fc.teamPlayerID(c, teamID)
	if !ok {
		return
	}
	month, err1 := strconv.Atoi(c.Query("month"))
	year, err2 := strconv.Atoi(c.Query("year"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		responses.BadRequest(c, "month and year query params are required")
		return
	}
	if err := fc.repo.DeleteException(playerID, Period{Month: month, Year: year}); err != nil {
		responses.InternalServerError(c, "Failed to delete exception")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Exception removed", nil)
}

// --- Historical debts & outstanding totals ---

// CreateDebt godoc
// @Summary Record a historical debt for a player
// @Tags Fees
// @Accept json
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Param debt body DebtRequest true "Debt"
// @Success 201 {object} responses.SuccessResponse{data=HistoricalDebt}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id}/debts [post]
func (fc *FeeController) CreateDebt(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	playerID, ok := fc.teamPlayerID(c, teamID)
	if !ok {
		return
	}

	var req DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		responses.BadRequest(c, "amount must be a positive decimal")
		return
	}

	debt := HistoricalDebt{
		PlayerID:    playerID,
		Month:       req.Month,
		Year:        req.Year,
		Amount:      amount,
		Description: req.Description,
	}
	if err := fc.repo.CreateDebt(&debt); err != nil {
		responses.InternalServerError(c, "Failed to record debt")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Debt recorded", debt)
}

// ListDebts godoc
// @Summary List a player's historical debts
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse{data=[]HistoricalDebt}
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id}/debts [get]
func (fc *FeeController) ListDebts(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	playerID, ok := fc.teamPlayerID(c, teamID)
	if !ok {
		return
	}
	debts, err := fc.repo.ListDebts(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load debts")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", debts)
}

// SettleDebt godoc
// @Summary Settle a historical debt
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param debt_id path int true "Debt ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/debts/{debt_id}/settle [post]
func (fc *FeeController) SettleDebt(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	debtID, ok := fc.teamDebtID(c, teamID)
	if !ok {
		return
	}
	if err := fc.repo.SettleDebt(debtID); err != nil {
		responses.InternalServerError(c, "Failed to settle debt")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Debt settled", nil)
}

// PlayerOutstanding godoc
// @Summary Total outstanding for a player
// @Description Unpaid payments plus unsettled historical debts, summed with exact decimals.
// @Tags Fees
// @Produce json
// @Param team_id path int true "Team ID"
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /teams/{team_id}/players/{player_id}/outstanding [get]
func (fc *FeeController) PlayerOutstanding(c *gin.Context) {
	teamID, ok := fc.ownedTeamID(c)
	if !ok {
		return
	}
	playerID, ok := fc.teamPlayerID(c, teamID)
	if !ok {
		return
	}
	total, err := fc.repo.OutstandingTotal(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute outstanding total")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"player_id": playerID, "outstanding": total})
}

// --- helpers ---

func (fc *FeeController) ownedTeamID(c *gin.Context) (uint, bool) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return 0, false
	}
	teamID, ok := parseID(c, "team_id")
	if !ok {
		return 0, false
	}
	isOwner, err := fc.repo.IsTeamOwner(teamID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify ownership")
		return 0, false
	}
	if !isOwner {
		responses.Forbidden(c, "Only the team owner can manage fees")
		return 0, false
	}
	return teamID, true
}

// teamPlayerID parses the player path param and checks the player belongs to
// the team.
func (fc *FeeController) teamPlayerID(c *gin.Context, teamID uint) (uint, bool) {
	playerID, ok := parseID(c, "player_id")
	if !ok {
		return 0, false
	}
	inTeam, err := fc.repo.PlayerInTeam(playerID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify player")
		return 0, false
	}
	if !inTeam {
		responses.NotFound(c, "Player")
		return 0, false
	}
	return playerID, true
}

// teamPaymentID parses the payment path param and checks it belongs to a
// player of the team.
func (fc *FeeController) teamPaymentID(c *gin.Context, teamID uint) (uint, bool) {
	paymentID, ok := parseID(c, "payment_id")
	if !ok {
		return 0, false
	}
	inTeam, err := fc.repo.PaymentInTeam(paymentID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify payment")
		return 0, false
	}
	if !inTeam {
		responses.NotFound(c, "Payment")
		return 0, false
	}
	return paymentID, true
}

// teamDebtID parses the debt path param and checks it belongs to a player of
// the team. Debts are settled through the team route, so the scope check is
// what keeps one owner from settling another team's debts.
func (fc *FeeController) teamDebtID(c *gin.Context, teamID uint) (uint, bool) {
	debtID, ok := parseID(c, "debt_id")
	if !ok {
		return 0, false
	}
	inTeam, err := fc.repo.DebtInTeam(debtID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to verify debt")
		return 0, false
	}
	if !inTeam {
		responses.NotFound(c, "Debt")
		return 0, false
	}
	return debtID, true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}
