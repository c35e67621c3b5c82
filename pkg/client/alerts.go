package client

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultAlertTTL is how long an alert stays visible unless dismissed.
const DefaultAlertTTL = 3000 * time.Millisecond

type Alert struct {
	ID      string
	Message string
	Kind    string
}

// Alerts is an ephemeral store of user-facing notices. Each alert expires
// on its own timer; pushing or dismissing one never touches the others.
type Alerts struct {
	mu     sync.Mutex
	alerts []Alert
	timers map[string]*time.Timer
	ttl    time.Duration
}

func NewAlerts(ttl time.Duration) *Alerts {
	if ttl <= 0 {
		ttl = DefaultAlertTTL
	}
	return &Alerts{
		timers: make(map[string]*time.Timer),
		ttl:    ttl,
	}
}

// Push adds an alert and schedules its expiry. The alert id is returned so
// callers can dismiss early.
func (a *Alerts) Push(message, kind string) string {
	id := uuid.NewString()

	a.mu.Lock()
	a.alerts = append(a.alerts, Alert{ID: id, Message: message, Kind: kind})
	a.timers[id] = time.AfterFunc(a.ttl, func() {
		a.Dismiss(id)
	})
	a.mu.Unlock()

	return id
}

// Dismiss removes the alert with the given id; unknown ids are ignored.
func (a *Alerts) Dismiss(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if timer, ok := a.timers[id]; ok {
		timer.Stop()
		delete(a.timers, id)
	}

	kept := a.alerts[:0]
	for _, alert := range a.alerts {
		if alert.ID != id {
			kept = append(kept, alert)
		}
	}
	a.alerts = kept
}

// List returns the currently visible alerts in insertion order.
func (a *Alerts) List() []Alert {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Alert, len(a.alerts))
	copy(out, a.alerts)
	return out
}
