package dunning

import (
	"log"
	"time"
)

// Sweeper walks eligible teams and applies the dunning schedule. Teams are
// independent units of work; one team's failure never aborts the batch.
type Sweeper struct {
	teams    TeamSource
	ledger   Ledger
	notifier Notifier
}

// NewSweeper wires a sweeper from its ports.
func NewSweeper(teams TeamSource, ledger Ledger, notifier Notifier) *Sweeper {
	return &Sweeper{teams: teams, ledger: ledger, notifier: notifier}
}

// Report summarizes one sweep run.
type Report struct {
	Scanned int `json:"scanned"`
	Emitted int `json:"emitted"`
	Failed  int `json:"failed"`
}

// Run executes the exact-day sweep: for every ACTIVE team, emit the
// milestones due today that the owner's ledger does not yet contain.
func (s *Sweeper) Run(now time.Time) (Report, error) {
	teams, err := s.teams.ActiveTeams()
	if err != nil {
		return Report{}, err
	}
	return s.process(teams, now, LogTypeAutomatic, ComputeDueTransitions), nil
}

// Backfill executes the bulk-repair pass over all non-excluded teams: any
// milestone whose day has passed and was never recorded is inserted with the
// missed milestone date as its timestamp.
func (s *Sweeper) Backfill(now time.Time) (Report, error) {
	teams, err := s.teams.AllTeams()
	if err != nil {
		return Report{}, err
	}
	return s.process(teams, now, LogTypeManual, ComputeBackfill), nil
}

type computeFunc func(createdAt time.Time, existing ActionSet, now time.Time) []Event

func (s *Sweeper) process(teams []TeamContext, now time.Time, logType string, compute computeFunc) Report {
	var report Report
	for _, team := range teams {
		report.Scanned++
		emitted, err := s.processTeam(team, now, logType, compute)
		if err != nil {
			report.Failed++
			log.Printf("dunning: team %d: %v", team.TeamID, err)
			continue
		}
		report.Emitted += emitted
	}
	return report
}

func (s *Sweeper) processTeam(team TeamContext, now time.Time, logType string, compute computeFunc) (int, error) {
	existing, err := s.ledger.ExistingActions(team.OwnerID)
	if err != nil {
		return 0, err
	}

	emitted := 0
	for _, ev := range compute(team.CreatedAt, existing, now) {
		inserted, err := s.ledger.RecordOnce(team.OwnerID, ev, logType)
		if err != nil {
			return emitted, err
		}
		if !inserted {
			// a concurrent sweep already handled this milestone
			continue
		}
		emitted++

		if ev.TeamStatus != "" {
			if err := s.teams.SetTeamStatus(team.TeamID, ev.TeamStatus); err != nil {
				return emitted, err
			}
		}

		// Delivery failure must not undo the ledger write or stop the batch.
		if err := s.notifier.Notify(team.OwnerID, ev); err != nil {
			log.Printf("dunning: notify user %d failed: %v", team.OwnerID, err)
		}
	}
	return emitted, nil
}
