package main

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/andrefarias-dev/mensalista/config"
	"github.com/andrefarias-dev/mensalista/internal/dunning"
	"github.com/andrefarias-dev/mensalista/internal/fees"
	"github.com/andrefarias-dev/mensalista/internal/match"
	"github.com/andrefarias-dev/mensalista/internal/player"
	"github.com/andrefarias-dev/mensalista/internal/team"
	"github.com/andrefarias-dev/mensalista/internal/user"
	"github.com/andrefarias-dev/mensalista/routes"
)

// @title Mensalista REST API
// @version 1.0
// @description Team management and monthly-fee billing server.
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()
	db := config.DB

	err := db.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&team.Team{}, &team.TeamUser{},
		&player.Player{},
		&fees.Payment{}, &fees.MonthlyFeeException{}, &fees.MonthlyFeeConfig{},
		&fees.HistoricalDebt{}, &fees.Transaction{},
		&match.Match{}, &match.MatchStat{},
		&dunning.UserLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	// Daily billing sweep. The schedule is exact-day, so one run per day is
	// enough; missed runs are repaired through the backfill endpoint.
	sweeper := dunning.NewSweeper(dunning.NewTeamSource(db), dunning.NewLedger(db), dunning.LogNotifier{})
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Dunning.SweepSchedule, func() {
		report, err := sweeper.Run(time.Now())
		if err != nil {
			log.Printf("dunning sweep failed: %v", err)
			return
		}
		log.Printf("dunning sweep: scanned=%d emitted=%d failed=%d", report.Scanned, report.Emitted, report.Failed)
	})
	if err != nil {
		log.Fatalf("Failed to schedule dunning sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := routes.SetupRoutes(db, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
