package player

import (
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/andrefarias-dev/mensalista/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlayerRoutes sets up roster routes
func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewPlayerRepository(db)
	controller := NewPlayerController(repo, team.NewTeamRepository(db))

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams/:team_id/players", controller.CreatePlayer)
		authRoutes.GET("/teams/:team_id/players", controller.GetTeamPlayers)
		authRoutes.PUT("/teams/:team_id/players/:player_id", controller.UpdatePlayer)
		authRoutes.DELETE("/teams/:team_id/players/:player_id", controller.DeletePlayer)
	}
}
