package user

import (
	"github.com/andrefarias-dev/mensalista/config"
	mw "github.com/andrefarias-dev/mensalista/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserRoutes sets up account routes
func UserRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewUserRepository(db)
	controller := NewUserController(repo, cfg)

	router.POST("/users/register", controller.Register)
	router.POST("/users/login", controller.Login)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(cfg.JWT.AccessTokenSecret, db))
	{
		authRoutes.GET("/users/me", controller.Me)
	}
}
