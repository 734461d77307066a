package dunning

import "log"

// Notifier delivers the message behind a lifecycle event. Delivery is opaque
// to the scheduler; email/WhatsApp senders plug in here.
type Notifier interface {
	Notify(ownerID uint, ev Event) error
}

// LogNotifier writes notifications to the process log. It is the default
// sender in environments without a messaging integration configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ownerID uint, ev Event) error {
	log.Printf("dunning: notify user %d: %s (%s)", ownerID, ev.Action, ev.Details)
	return nil
}
