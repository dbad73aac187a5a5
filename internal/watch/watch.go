package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kiosk-fleet-health/internal/fleet"
	k "kiosk-fleet-health/internal/kafka"
)

// Transition is an observed effective-status change for one device. From is
// empty the first time a device is seen.
type Transition struct {
	MachineID string
	From      string
	To        string
	At        time.Time
}

type fetcher interface {
	FetchDevices(ctx context.Context) ([]fleet.DeviceRecord, error)
}

type Config struct {
	Fetcher      fetcher
	PollInterval time.Duration
	Staleness    time.Duration
	Buffer       int
}

// Watcher maintains a client-side view of the fleet fed by two independent
// producers: the periodic snapshot poll, which fully replaces the view, and
// pushed change records, which patch a single device. The poll is what makes
// staleness-driven transitions visible, since push only fires on ingestion.
type Watcher struct {
	fetcher   fetcher
	interval  time.Duration
	staleness time.Duration
	now       func() time.Time

	mu   sync.Mutex
	view map[string]fleet.DeviceRecord
	// lastStatus remembers the effective status at the previous
	// observation; staleness transitions are only visible against it, since
	// re-evaluating an unchanged record at one instant yields one status.
	lastStatus map[string]string

	transitions chan Transition
}

func New(cfg Config) *Watcher {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	staleness := cfg.Staleness
	if staleness <= 0 {
		staleness = fleet.DefaultStalenessThreshold
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 64
	}
	return &Watcher{
		fetcher:     cfg.Fetcher,
		interval:    interval,
		staleness:   staleness,
		now:         time.Now,
		view:        make(map[string]fleet.DeviceRecord),
		lastStatus:  make(map[string]string),
		transitions: make(chan Transition, buffer),
	}
}

func (w *Watcher) Transitions() <-chan Transition {
	return w.transitions
}

// Devices returns a copy of the current view with effective statuses.
func (w *Watcher) Devices() []fleet.DeviceRecord {
	now := w.now().UTC()
	w.mu.Lock()
	defer w.mu.Unlock()
	devices := make([]fleet.DeviceRecord, 0, len(w.view))
	for _, rec := range w.view {
		rec.Status = fleet.EffectiveStatus(&rec, now, w.staleness)
		devices = append(devices, rec)
	}
	return devices
}

// Run polls on the configured interval until ctx is done. The first poll
// happens immediately.
func (w *Watcher) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Watcher started...", "interval", w.interval)
	if err := w.Poll(ctx); err != nil {
		slog.ErrorContext(ctx, "Error polling snapshot", "error", err)
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Watcher stopped...")
			return
		case <-ticker.C:
			if err := w.Poll(ctx); err != nil {
				slog.ErrorContext(ctx, "Error polling snapshot", "error", err)
			}
		}
	}
}

// Poll fetches the full snapshot and replaces the view with it. The poll
// response is authoritative; anything push delivery missed is corrected here.
func (w *Watcher) Poll(ctx context.Context) error {
	devices, err := w.fetcher.FetchDevices(ctx)
	if err != nil {
		return err
	}
	now := w.now().UTC()

	w.mu.Lock()
	defer w.mu.Unlock()
	next := make(map[string]fleet.DeviceRecord, len(devices))
	nextStatus := make(map[string]string, len(devices))
	for _, rec := range devices {
		next[rec.MachineID] = rec
		nextStatus[rec.MachineID] = w.observeLocked(rec, now)
	}
	w.view = next
	w.lastStatus = nextStatus
	return nil
}

// ApplyChange patches a single device from a pushed change record. Applying
// the same change twice is a no-op: a patch no newer than the current view
// entry is discarded.
func (w *Watcher) ApplyChange(change k.ChangeRecord) {
	rec := change.Record
	now := w.now().UTC()

	w.mu.Lock()
	defer w.mu.Unlock()
	if old, ok := w.view[rec.MachineID]; ok && !rec.UpdatedAt.After(old.UpdatedAt) {
		return
	}
	w.lastStatus[rec.MachineID] = w.observeLocked(rec, now)
	w.view[rec.MachineID] = rec
}

// observeLocked computes the record's current effective status, emits a
// transition if it differs from the last observed one, and returns it.
// Diffing effective statuses, not raw stored ones, keeps an error device
// whose heartbeats stopped from producing a spurious offline report.
func (w *Watcher) observeLocked(rec fleet.DeviceRecord, now time.Time) string {
	from := w.lastStatus[rec.MachineID]
	to := fleet.EffectiveStatus(&rec, now, w.staleness)
	if from == to {
		return to
	}
	select {
	case w.transitions <- Transition{MachineID: rec.MachineID, From: from, To: to, At: now}:
	default:
		slog.Warn("Transition buffer full, dropping notification", "machine_id", rec.MachineID)
	}
	return to
}
