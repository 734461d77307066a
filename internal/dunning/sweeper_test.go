package dunning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTeamSource struct {
	teams    []TeamContext
	statuses map[uint]string
	err      error
}

func (f *fakeTeamSource) ActiveTeams() ([]TeamContext, error) { return f.teams, f.err }
func (f *fakeTeamSource) AllTeams() ([]TeamContext, error)    { return f.teams, f.err }

func (f *fakeTeamSource) SetTeamStatus(teamID uint, status string) error {
	if f.statuses == nil {
		f.statuses = make(map[uint]string)
	}
	f.statuses[teamID] = status
	return nil
}

type recordedEvent struct {
	userID  uint
	ev      Event
	logType string
}

type fakeLedger struct {
	existing map[uint]ActionSet
	failFor  map[uint]error
	conflict map[Action]bool
	recorded []recordedEvent
}

func (f *fakeLedger) ExistingActions(userID uint) (ActionSet, error) {
	if err := f.failFor[userID]; err != nil {
		return nil, err
	}
	if s, ok := f.existing[userID]; ok {
		return s, nil
	}
	return NewActionSet(), nil
}

func (f *fakeLedger) RecordOnce(userID uint, ev Event, logType string) (bool, error) {
	if f.conflict[ev.Action] {
		return false, nil
	}
	f.recorded = append(f.recorded, recordedEvent{userID: userID, ev: ev, logType: logType})
	return true, nil
}

func (f *fakeLedger) ListUserLogs(userID uint) ([]UserLog, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []Event
	err  error
}

func (f *fakeNotifier) Notify(ownerID uint, ev Event) error {
	f.sent = append(f.sent, ev)
	return f.err
}

func team(id, owner uint, createdAt time.Time) TeamContext {
	return TeamContext{TeamID: id, OwnerID: owner, CreatedAt: createdAt, Status: "ACTIVE"}
}

func TestSweeperLifecycleScenario(t *testing.T) {
	createdAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeTeamSource{teams: []TeamContext{team(1, 11, createdAt)}}
	notifier := &fakeNotifier{}

	// day 5: exactly the reminder
	ledger := &fakeLedger{}
	sweeper := NewSweeper(source, ledger, notifier)
	report, err := sweeper.Run(time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, Report{Scanned: 1, Emitted: 1}, report)
	require.Len(t, ledger.recorded, 1)
	require.Equal(t, ActionPaymentReminderSent, ledger.recorded[0].ev.Action)
	require.Equal(t, LogTypeAutomatic, ledger.recorded[0].logType)
	require.Empty(t, source.statuses)

	// day 8 with the reminder logged: exactly the overdue event, team OVERDUE
	ledger = &fakeLedger{existing: map[uint]ActionSet{11: NewActionSet(ActionPaymentReminderSent)}}
	sweeper = NewSweeper(source, ledger, notifier)
	report, err = sweeper.Run(time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, report.Emitted)
	require.Equal(t, ActionPaymentOverdue, ledger.recorded[0].ev.Action)
	require.Equal(t, TargetStatusOverdue, source.statuses[1])

	// day 10 with both logged: exactly the block event, team BLOCKED
	ledger = &fakeLedger{existing: map[uint]ActionSet{11: NewActionSet(ActionPaymentReminderSent, ActionPaymentOverdue)}}
	sweeper = NewSweeper(source, ledger, notifier)
	report, err = sweeper.Run(time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, report.Emitted)
	require.Equal(t, ActionAccessBlocked, ledger.recorded[0].ev.Action)
	require.Equal(t, TargetStatusBlocked, source.statuses[1])
}

func TestSweeperIsolatesTeamFailures(t *testing.T) {
	createdAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeTeamSource{teams: []TeamContext{
		team(1, 11, createdAt),
		team(2, 22, createdAt),
	}}
	ledger := &fakeLedger{failFor: map[uint]error{11: errors.New("connection reset")}}
	sweeper := NewSweeper(source, ledger, &fakeNotifier{})

	report, err := sweeper.Run(time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, Report{Scanned: 2, Emitted: 1, Failed: 1}, report)
	require.Len(t, ledger.recorded, 1)
	require.Equal(t, uint(22), ledger.recorded[0].userID)
}

func TestSweeperNotifierFailureKeepsLedgerWrite(t *testing.T) {
	createdAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeTeamSource{teams: []TeamContext{team(1, 11, createdAt)}}
	ledger := &fakeLedger{}
	sweeper := NewSweeper(source, ledger, &fakeNotifier{err: errors.New("smtp timeout")})

	report, err := sweeper.Run(time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, Report{Scanned: 1, Emitted: 1}, report)
	require.Len(t, ledger.recorded, 1)
}

func TestSweeperLostInsertRaceIsNoOp(t *testing.T) {
	createdAt := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	source := &fakeTeamSource{teams: []TeamContext{team(1, 11, createdAt)}}
	ledger := &fakeLedger{conflict: map[Action]bool{ActionPaymentOverdue: true}}
	notifier := &fakeNotifier{}
	sweeper := NewSweeper(source, ledger, notifier)

	report, err := sweeper.Run(time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, Report{Scanned: 1, Emitted: 0}, report)
	require.Empty(t, notifier.sent)
	// the winning sweep applies the status change, not the loser
	require.Empty(t, source.statuses)
}

func TestSweeperBackfillRepairsMissedMilestones(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	createdAt := now.AddDate(0, 0, -60)
	source := &fakeTeamSource{teams: []TeamContext{team(1, 11, createdAt)}}
	ledger := &fakeLedger{}
	sweeper := NewSweeper(source, ledger, &fakeNotifier{})

	report, err := sweeper.Backfill(now)
	require.NoError(t, err)
	require.Equal(t, Report{Scanned: 1, Emitted: 3}, report)
	require.Equal(t, TargetStatusBlocked, source.statuses[1])

	for i, rec := range ledger.recorded {
		require.Equal(t, LogTypeManual, rec.logType)
		require.True(t, rec.ev.Timestamp.Equal(createdAt.AddDate(0, 0, Milestones[i].Day)),
			"timestamp for %s should be the missed milestone date", rec.ev.Action)
	}
}
