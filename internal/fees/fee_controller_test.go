package fees

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeFeeRepository carries just enough in-memory scoping data for the
// controller tests; everything else is a stub.
type fakeFeeRepository struct {
	ownerByTeam map[uint]uint // team id -> owner user id
	debtTeams   map[uint]uint // debt id -> team id
	settled     []uint
}

func (f *fakeFeeRepository) GetConfig(teamID uint) (*MonthlyFeeConfig, error) { return nil, nil }
func (f *fakeFeeRepository) UpsertConfig(cfg *MonthlyFeeConfig) error         { return nil }

func (f *fakeFeeRepository) IsTeamOwner(teamID, userID uint) (bool, error) {
	return f.ownerByTeam[teamID] == userID, nil
}
func (f *fakeFeeRepository) PlayerInTeam(playerID, teamID uint) (bool, error) { return false, nil }
func (f *fakeFeeRepository) PaymentInTeam(paymentID, teamID uint) (bool, error) {
	return false, nil
}
func (f *fakeFeeRepository) DebtInTeam(debtID, teamID uint) (bool, error) {
	return f.debtTeams[debtID] == teamID, nil
}

func (f *fakeFeeRepository) ActiveRoster(teamID uint) ([]RosterEntry, error) { return nil, nil }
func (f *fakeFeeRepository) GetPlayerPeriodRows(playerID uint, p Period) ([]Payment, []MonthlyFeeException, error) {
	return nil, nil, nil
}
func (f *fakeFeeRepository) GetTeamPeriodRows(teamID uint, p Period) (map[uint][]Payment, map[uint][]MonthlyFeeException, error) {
	return nil, nil, nil
}
func (f *fakeFeeRepository) GeneratePayments(teamID uint, p Period) (int, error) { return 0, nil }
func (f *fakeFeeRepository) GetPaymentByID(id uint) (*Payment, error)            { return nil, nil }
func (f *fakeFeeRepository) MarkPaid(paymentID uint, when time.Time) (*Payment, error) {
	return nil, nil
}
func (f *fakeFeeRepository) MarkUnpaid(paymentID uint) (*Payment, error)    { return nil, nil }
func (f *fakeFeeRepository) UpsertException(ex *MonthlyFeeException) error  { return nil }
func (f *fakeFeeRepository) DeleteException(playerID uint, p Period) error  { return nil }
func (f *fakeFeeRepository) CreateDebt(debt *HistoricalDebt) error          { return nil }
func (f *fakeFeeRepository) ListDebts(playerID uint) ([]HistoricalDebt, error) {
	return nil, nil
}
func (f *fakeFeeRepository) SettleDebt(debtID uint) error {
	f.settled = append(f.settled, debtID)
	return nil
}
func (f *fakeFeeRepository) OutstandingTotal(playerID uint) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// settleRequest runs SettleDebt as authenticated user 1 against the given
// path params.
func settleRequest(t *testing.T, repo FeeRepository, teamID, debtID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set(mw.AuthUserIDKey, uint(1))
	c.Params = gin.Params{
		{Key: "team_id", Value: teamID},
		{Key: "debt_id", Value: debtID},
	}
	NewFeeController(repo).SettleDebt(c)
	return w
}

func TestSettleDebtRejectsDebtFromAnotherTeam(t *testing.T) {
	// user 1 owns team 1; debt 99 belongs to a player of team 2
	repo := &fakeFeeRepository{
		ownerByTeam: map[uint]uint{1: 1, 2: 2},
		debtTeams:   map[uint]uint{99: 2},
	}

	w := settleRequest(t, repo, "1", "99")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Empty(t, repo.settled, "a debt outside the caller's team must never be settled")
}

func TestSettleDebtSettlesOwnTeamDebt(t *testing.T) {
	repo := &fakeFeeRepository{
		ownerByTeam: map[uint]uint{1: 1},
		debtTeams:   map[uint]uint{7: 1},
	}

	w := settleRequest(t, repo, "1", "7")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []uint{7}, repo.settled)
}

func TestSettleDebtRequiresOwnership(t *testing.T) {
	// team 2 belongs to user 2; caller is user 1
	repo := &fakeFeeRepository{
		ownerByTeam: map[uint]uint{2: 2},
		debtTeams:   map[uint]uint{99: 2},
	}

	w := settleRequest(t, repo, "2", "99")

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Empty(t, repo.settled)
}
