package domain

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// TickInterval is the refresh period of the clock display.
const TickInterval = time.Second

var weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FormatClock renders t as "<Weekday>, <Month> <Day>, <Year>, <HH>:<MM>:<SS>".
// Fields are taken from t as-is; no timezone conversion is applied.
func FormatClock(t time.Time) string {
	// Month names are English only, matching the page language.
	return fmt.Sprintf("%s, %s %d, %d, %02d:%02d:%02d",
		weekdays[t.Weekday()], t.Month().String(), t.Day(), t.Year(),
		t.Hour(), t.Minute(), t.Second())
}

// ClockTicker keeps a display element updated with the current local time.
type ClockTicker struct {
	doc    Document
	sched  Scheduler
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewClockTicker creates a ClockTicker. A nil clock uses the real clock.
func NewClockTicker(doc Document, sched Scheduler, clock clockwork.Clock, logger *slog.Logger) *ClockTicker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ClockTicker{
		doc:    doc,
		sched:  sched,
		clock:  clock,
		logger: logger,
	}
}

// Start writes the current time immediately and then once per TickInterval.
// There is no stop; ticking ends with the scheduler.
func (t *ClockTicker) Start(displayID string) {
	t.update(displayID)
	t.sched.Every(TickInterval, func() { t.update(displayID) })
	t.logger.Debug("clock started", "id", displayID, "interval", TickInterval)
}

func (t *ClockTicker) update(displayID string) {
	el, ok := t.doc.Text(displayID)
	if !ok {
		return
	}
	el.SetText(FormatClock(t.clock.Now()))
}
