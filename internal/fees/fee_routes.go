package fees

import (
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FeeRoutes sets up monthly-fee routes
func FeeRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewFeeRepository(db)
	controller := NewFeeController(repo)

	// shared read-only report, no auth
	router.GET("/public/teams/:team_id/fees/report", controller.SharedTeamFeeReport)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/teams/:team_id/fees/config", controller.GetFeeConfig)
		authRoutes.PUT("/teams/:team_id/fees/config", controller.UpdateFeeConfig)
		authRoutes.POST("/teams/:team_id/fees/generate", controller.GeneratePayments)
		authRoutes.GET("/teams/:team_id/fees/report", controller.TeamFeeReport)

		authRoutes.POST("/teams/:team_id/payments/:payment_id/pay", controller.MarkPaid)
		authRoutes.POST("/teams/:team_id/payments/:payment_id/unpay", controller.MarkUnpaid)

		authRoutes.PUT("/teams/:team_id/players/:player_id/exceptions", controller.UpsertException)
		authRoutes.DELETE("/teams/:team_id/players/:player_id/exceptions", controller.DeleteException)

		authRoutes.POST("/teams/:team_id/players/:player_id/debts", controller.CreateDebt)
		authRoutes.GET("/teams/:team_id/players/:player_id/debts", controller.ListDebts)
		authRoutes.POST("/teams/:team_id/debts/:debt_id/settle", controller.SettleDebt)
		authRoutes.GET("/teams/:team_id/players/:player_id/outstanding", controller.PlayerOutstanding)
	}
}
