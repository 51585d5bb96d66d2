// Package usage counts upstream-backed requests against a daily limit and
// keeps a short log of who called the weather API.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DateLayout names a counting day.
	DateLayout = "2006-01-02"
	// DefaultLogSize is how many log entries are kept.
	DefaultLogSize = 50
)

const unknownLocation = "unknown"

// Counter is the persisted request count for one day.
type Counter struct {
	Date  string
	Count int
}

// Store persists the daily counter.
type Store interface {
	// Load returns the zero Counter when nothing has been saved.
	Load() (Counter, error)
	Save(Counter) error
}

// IPLocator describes where a client address is.
type IPLocator interface {
	LocateIP(ctx context.Context, ip string) (string, error)
}

// Publisher ships log entries elsewhere.
type Publisher interface {
	Publish(ctx context.Context, e Entry) error
}

// Entry is one usage log line.
type Entry struct {
	Time     time.Time `json:"time"`
	Endpoint string    `json:"endpoint"`
	IP       string    `json:"ip"`
	Location string    `json:"location"`
}

// Snapshot is the tracker state shown on the usage dashboard.
type Snapshot struct {
	Date    string
	Count   int
	Limit   int
	Entries []Entry
}

// Options configures a Tracker. IPLocator and Publisher are optional.
// Clock and Logger default to the real clock and slog.Default.
type Options struct {
	Clock     clockwork.Clock
	Limit     int
	LogSize   int
	Store     Store
	IPLocator IPLocator
	Publisher Publisher
	Logger    *slog.Logger
}

// Tracker implements weather.Quota and weather.UsageRecorder.
type Tracker struct {
	clock     clockwork.Clock
	limit     int
	logSize   int
	store     Store
	ipLocator IPLocator
	publisher Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	counter Counter
	entries []Entry
	onReset []func()
}

// NewTracker creates a Tracker seeded from the store.
func NewTracker(opts Options) (*Tracker, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LogSize <= 0 {
		opts.LogSize = DefaultLogSize
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("usage limit must be positive, got %d", opts.Limit)
	}

	counter, err := opts.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load usage counter: %w", err)
	}

	t := &Tracker{
		clock:     opts.Clock,
		limit:     opts.Limit,
		logSize:   opts.LogSize,
		store:     opts.Store,
		ipLocator: opts.IPLocator,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		counter:   counter,
	}
	t.rollover()
	return t, nil
}

// OnReset registers fn to run whenever a new day starts. fn runs with the
// tracker locked and must not call back into it.
func (t *Tracker) OnReset(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = append(t.onReset, fn)
}

// Limit returns the daily limit.
func (t *Tracker) Limit() int { return t.limit }

// Allow counts one request for today unless the limit is already reached.
func (t *Tracker) Allow(_ context.Context) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover()
	if t.counter.Count >= t.limit {
		return t.counter.Count, false
	}
	t.counter.Count++
	t.save()
	return t.counter.Count, true
}

// Record appends a log entry for endpoint. The client location is looked up
// first; failures leave it as "unknown".
func (t *Tracker) Record(ctx context.Context, endpoint, clientIP string) {
	if clientIP == "" {
		clientIP = unknownLocation
	}
	location := unknownLocation
	if t.ipLocator != nil && clientIP != unknownLocation {
		loc, err := t.ipLocator.LocateIP(ctx, clientIP)
		switch {
		case err != nil:
			t.logger.Debug("ip lookup failed", "ip", clientIP, "error", err)
		case loc != "":
			location = loc
		}
	}

	e := Entry{Time: t.clock.Now(), Endpoint: endpoint, IP: clientIP, Location: location}

	t.mu.Lock()
	t.rollover()
	t.entries = append(t.entries, e)
	if over := len(t.entries) - t.logSize; over > 0 {
		t.entries = append(t.entries[:0:0], t.entries[over:]...)
	}
	t.mu.Unlock()

	if t.publisher != nil {
		if err := t.publisher.Publish(ctx, e); err != nil {
			t.logger.Warn("publish usage entry failed", "endpoint", endpoint, "error", err)
		}
	}
}

// Snapshot returns today's counter and the log, oldest entry first.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover()
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return Snapshot{
		Date:    t.counter.Date,
		Count:   t.counter.Count,
		Limit:   t.limit,
		Entries: entries,
	}
}

// rollover starts a new day when the date has changed. Callers hold t.mu.
func (t *Tracker) rollover() {
	today := t.clock.Now().Format(DateLayout)
	if t.counter.Date == today {
		return
	}
	t.logger.Info("starting new usage day", "date", today, "previous_date", t.counter.Date, "previous_count", t.counter.Count)
	t.counter = Counter{Date: today}
	t.entries = nil
	t.save()
	for _, fn := range t.onReset {
		fn()
	}
}

func (t *Tracker) save() {
	if err := t.store.Save(t.counter); err != nil {
		t.logger.Error("save usage counter failed", "date", t.counter.Date, "error", err)
	}
}

// MemoryStore keeps the counter in memory.
type MemoryStore struct {
	mu      sync.Mutex
	counter Counter
}

func (s *MemoryStore) Load() (Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter, nil
}

func (s *MemoryStore) Save(c Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter = c
	return nil
}
