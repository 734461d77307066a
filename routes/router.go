package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/andrefarias-dev/mensalista/config"
	"github.com/andrefarias-dev/mensalista/internal/dunning"
	"github.com/andrefarias-dev/mensalista/internal/fees"
	"github.com/andrefarias-dev/mensalista/internal/match"
	"github.com/andrefarias-dev/mensalista/internal/player"
	"github.com/andrefarias-dev/mensalista/internal/team"
	"github.com/andrefarias-dev/mensalista/internal/user"
)

func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "mensalista", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	jwtSecret := cfg.JWT.AccessTokenSecret

	user.UserRoutes(api, db, cfg)
	team.TeamRoutes(api, db, jwtSecret)
	player.PlayerRoutes(api, db, jwtSecret)
	fees.FeeRoutes(api, db, jwtSecret)
	match.MatchRoutes(api, db, jwtSecret)
	dunning.DunningRoutes(api, db, jwtSecret)

	return r
}
