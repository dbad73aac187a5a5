package fleet

import "time"

// Liveness statuses a device can carry. The stored status reflects the last
// ingested event only; readers must re-check staleness via EffectiveStatus.
const (
	StatusOnline     = "online"
	StatusOffline    = "offline"
	StatusError      = "error"
	StatusRecovering = "recovering"
	StatusUnknown    = "unknown"
)

// Event types reported by kiosk devices.
const (
	EventHeartbeat         = "heartbeat"
	EventBootComplete      = "boot_complete"
	EventWatchdogStarted   = "watchdog_started"
	EventError             = "error"
	EventHealthCheckFailed = "health_check_failed"
	EventRecoveryStarted   = "recovery_started"
	EventChromiumRestart   = "chromium_restart"
	EventContainerRestart  = "container_restart"
)

const (
	// MaxEventLog caps the per-device audit trail.
	MaxEventLog = 100

	// DefaultStalenessThreshold is how long a device may go without a
	// liveness signal before readers treat it as offline.
	DefaultStalenessThreshold = 120 * time.Second
)

type EventRecord struct {
	EventType  string         `json:"event_type"`
	ReceivedAt time.Time      `json:"received_at"`
	Details    map[string]any `json:"details,omitempty"`
}

type DeviceRecord struct {
	MachineID       string         `json:"machine_id"`
	Hostname        string         `json:"hostname"`
	IPAddress       *string        `json:"ip_address"`
	Status          string         `json:"status"`
	LastHeartbeatAt *time.Time     `json:"last_heartbeat_at"`
	LastEvent       string         `json:"last_event"`
	LastEventAt     time.Time      `json:"last_event_at"`
	InstallID       *string        `json:"install_id"`
	Config          map[string]any `json:"config"`
	Events          []EventRecord  `json:"events"`
	Metrics         map[string]any `json:"metrics"`
	UptimeSeconds   int64          `json:"uptime_seconds"`
	CrashCount      int64          `json:"crash_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type FleetMetrics struct {
	Total            int   `json:"total"`
	Online           int   `json:"online"`
	Offline          int   `json:"offline"`
	Error            int   `json:"error"`
	TotalUptimeHours int64 `json:"total_uptime_hours"`
	TotalCrashes     int64 `json:"total_crashes"`
}

// Classification is the event-driven layer of the status state machine,
// applied once at ingestion time.
type Classification struct {
	Status   string
	Liveness bool // refreshes LastHeartbeatAt
	Restart  bool // increments CrashCount
	Known    bool
}

// Classify maps an event type to its ingestion-time classification.
// Unrecognized event types default to online with no timestamp or counter
// side effects; callers are expected to log them.
func Classify(eventType string) Classification {
	switch eventType {
	case EventHeartbeat, EventBootComplete, EventWatchdogStarted:
		return Classification{Status: StatusOnline, Liveness: true, Known: true}
	case EventError, EventHealthCheckFailed:
		return Classification{Status: StatusError, Known: true}
	case EventRecoveryStarted:
		return Classification{Status: StatusRecovering, Known: true}
	case EventChromiumRestart, EventContainerRestart:
		return Classification{Status: StatusOnline, Liveness: true, Restart: true, Known: true}
	default:
		return Classification{Status: StatusOnline}
	}
}

// EffectiveStatus is the time-driven layer, applied on every read. A stored
// error or recovering status is authoritative: the device was still
// communicating when it reported it, which is not the same as total silence.
// Anything else degrades to offline once the last liveness signal is older
// than the threshold, or was never seen at all.
func EffectiveStatus(rec *DeviceRecord, now time.Time, threshold time.Duration) string {
	switch rec.Status {
	case StatusError, StatusRecovering:
		return rec.Status
	}
	if rec.LastHeartbeatAt == nil || now.Sub(*rec.LastHeartbeatAt) > threshold {
		return StatusOffline
	}
	if rec.Status == "" {
		return StatusUnknown
	}
	return rec.Status
}

// AppendEvent prepends ev to the audit trail, evicting the oldest entry once
// at capacity. Eviction is FIFO by insertion; out-of-order delivery is not
// reordered.
func (r *DeviceRecord) AppendEvent(ev EventRecord) {
	events := make([]EventRecord, 0, min(len(r.Events)+1, MaxEventLog))
	events = append(events, ev)
	keep := len(r.Events)
	if keep > MaxEventLog-1 {
		keep = MaxEventLog - 1
	}
	events = append(events, r.Events[:keep]...)
	r.Events = events
}

// ComputeMetrics aggregates fleet-wide counts from the given records.
// Effective status is computed exactly once per device, so the online,
// offline and error buckets are mutually exclusive: a stale device whose
// stored status is error counts as error, never offline. Recovering and
// unknown devices count toward the total only.
func ComputeMetrics(devices []DeviceRecord, now time.Time, threshold time.Duration) FleetMetrics {
	m := FleetMetrics{Total: len(devices)}
	var uptime int64
	for i := range devices {
		switch EffectiveStatus(&devices[i], now, threshold) {
		case StatusOnline:
			m.Online++
		case StatusOffline:
			m.Offline++
		case StatusError:
			m.Error++
		}
		uptime += devices[i].UptimeSeconds
		m.TotalCrashes += devices[i].CrashCount
	}
	m.TotalUptimeHours = uptime / 3600
	return m
}
