package match

import (
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchRoutes sets up match-tracking routes
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewMatchRepository(db)
	controller := NewMatchController(repo, team.NewTeamRepository(db))

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams/:team_id/matches", controller.CreateMatch)
		authRoutes.GET("/teams/:team_id/matches", controller.GetTeamMatches)
		authRoutes.DELETE("/teams/:team_id/matches/:match_id", controller.DeleteMatch)
		authRoutes.POST("/teams/:team_id/matches/:match_id/stats", controller.UpsertStat)
		authRoutes.GET("/teams/:team_id/matches/:match_id/stats", controller.GetMatchStats)
	}
}
