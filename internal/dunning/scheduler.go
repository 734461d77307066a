package dunning

import "time"

// Action identifies one lifecycle event in the owner's ledger.
type Action string

const (
	ActionWelcomeMessageSent  Action = "welcome_message_sent"
	ActionPaymentReminderSent Action = "payment_reminder_sent"
	ActionPaymentOverdue      Action = "payment_overdue"
	ActionAccessBlocked       Action = "access_blocked"
)

// Team statuses a milestone pushes a team toward. Empty means no change.
const (
	TargetStatusOverdue = "OVERDUE"
	TargetStatusBlocked = "BLOCKED"
)

// Milestone is a day-offset from team creation at which a transition fires.
type Milestone struct {
	Day        int
	Action     Action
	Details    string
	TeamStatus string
}

// Milestones is the dunning schedule, in firing order.
var Milestones = []Milestone{
	{Day: 5, Action: ActionPaymentReminderSent, Details: "Payment reminder sent on day 5 after team creation"},
	{Day: 8, Action: ActionPaymentOverdue, Details: "Payment marked overdue on day 8 after team creation", TeamStatus: TargetStatusOverdue},
	{Day: 10, Action: ActionAccessBlocked, Details: "Access blocked on day 10 after team creation", TeamStatus: TargetStatusBlocked},
}

// Event is an emitted transition, ready to be persisted as a ledger row.
type Event struct {
	Action     Action
	Details    string
	Timestamp  time.Time
	TeamStatus string
}

// ActionSet is the set of actions already present in an owner's ledger.
type ActionSet map[Action]struct{}

// NewActionSet builds a set from a list of recorded actions.
func NewActionSet(actions ...Action) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s[a] = struct{}{}
	}
	return s
}

// Has reports whether the action was already recorded.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

// elapsedDays floors the difference between two instants to whole days.
func elapsedDays(createdAt, now time.Time) int {
	d := now.Sub(createdAt)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// ComputeDueTransitions returns the milestones newly due for a team on this
// exact day. A milestone fires only when the elapsed whole days since team
// creation equal its day offset and its action is absent from the ledger, so
// a sweep that skips the exact day misses the milestone; Backfill is the
// repair path for that. Pure function, no side effects.
func ComputeDueTransitions(createdAt time.Time, existing ActionSet, now time.Time) []Event {
	diffDays := elapsedDays(createdAt, now)

	var due []Event
	for _, m := range Milestones {
		if m.Day != diffDays || existing.Has(m.Action) {
			continue
		}
		due = append(due, Event{
			Action:     m.Action,
			Details:    m.Details,
			Timestamp:  now,
			TeamStatus: m.TeamStatus,
		})
	}
	return due
}

// ComputeBackfill returns every milestone whose day has passed and whose
// action was never recorded, with timestamps pinned to the missed milestone
// date. This is the explicit bulk-repair counterpart to the exact-day sweep.
func ComputeBackfill(createdAt time.Time, existing ActionSet, now time.Time) []Event {
	diffDays := elapsedDays(createdAt, now)

	var missed []Event
	for _, m := range Milestones {
		if m.Day > diffDays || existing.Has(m.Action) {
			continue
		}
		missed = append(missed, Event{
			Action:     m.Action,
			Details:    m.Details,
			Timestamp:  createdAt.AddDate(0, 0, m.Day),
			TeamStatus: m.TeamStatus,
		})
	}
	return missed
}

// WelcomeEvent is the one-shot fired at team creation, outside the periodic
// schedule.
func WelcomeEvent(now time.Time) Event {
	return Event{
		Action:    ActionWelcomeMessageSent,
		Details:   "Welcome message sent at team creation",
		Timestamp: now,
	}
}
