package team

import (
	"github.com/andrefarias-dev/mensalista/internal/dunning"
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	teamRepo := NewTeamRepository(db)
	teamController := NewTeamController(teamRepo, dunning.NewLedger(db), db)

	// Public team routes
	router.GET("/teams/:team_id", teamController.GetTeamByID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams", teamController.CreateTeam)
		authRoutes.PUT("/teams/:team_id", teamController.UpdateTeam)
		authRoutes.DELETE("/teams/:team_id", teamController.DeleteTeam)
		authRoutes.POST("/teams/:team_id/pause", teamController.PauseTeam)
		authRoutes.POST("/teams/:team_id/resume", teamController.ResumeTeam)
		authRoutes.GET("/users/me/teams", teamController.GetMyTeams)
	}

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	adminRoutes.Use(mw.AdminMiddleware(db))
	{
		adminRoutes.GET("/teams", teamController.AdminGetAllTeams)
	}
}
