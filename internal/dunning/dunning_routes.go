package dunning

import (
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DunningRoutes wires the admin dunning endpoints.
func DunningRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	ledger := NewLedger(db)
	sweeper := NewSweeper(NewTeamSource(db), ledger, LogNotifier{})
	controller := NewDunningController(sweeper, ledger)

	adminRoutes := router.Group("/admin/dunning")
	adminRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	adminRoutes.Use(mw.AdminMiddleware(db))
	{
		adminRoutes.POST("/sweep", controller.RunSweep)
		adminRoutes.POST("/backfill", controller.RunBackfill)
		adminRoutes.GET("/users/:user_id/logs", controller.GetUserLogs)
	}
}
