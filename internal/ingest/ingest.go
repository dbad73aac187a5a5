package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kiosk-fleet-health/internal/fleet"
	k "kiosk-fleet-health/internal/kafka"
)

var (
	ErrValidation = errors.New("missing required field")
	ErrStore      = errors.New("store operation failed")
)

// Report is the payload a kiosk posts on every lifecycle event. Only event,
// hostname and machine_id are mandatory. The device-reported timestamp is
// kept for audit but never trusted for liveness; device clocks drift.
type Report struct {
	Event        string         `json:"event"`
	Hostname     string         `json:"hostname"`
	MachineID    string         `json:"machine_id"`
	IPAddress    string         `json:"ip_address,omitempty"`
	Timestamp    string         `json:"timestamp,omitempty"`
	Metrics      map[string]any `json:"metrics,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	InstallID    string         `json:"install_id,omitempty"`
}

type store interface {
	GetDevice(ctx context.Context, machineID string) (*fleet.DeviceRecord, error)
	UpsertDevice(ctx context.Context, rec *fleet.DeviceRecord) error
}

type notifier interface {
	Publish(ctx context.Context, changeType string, rec *fleet.DeviceRecord)
}

type Config struct {
	Store    store
	Notifier notifier
}

type Service struct {
	store    store
	notifier notifier
	now      func() time.Time
}

func New(cfg Config) *Service {
	return &Service{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		now:      time.Now,
	}
}

// Ingest validates and classifies one report, folds it into the device's
// record and upserts the result. Returns the persisted record. A valid but
// unrecognized event type is not an error; it defaults to online with no
// counter or heartbeat side effects so newer firmware cannot break ingestion.
func (s *Service) Ingest(ctx context.Context, rep Report) (*fleet.DeviceRecord, error) {
	const fn = "Service:Ingest"
	if rep.MachineID == "" || rep.Hostname == "" || rep.Event == "" {
		return nil, fmt.Errorf("%s:%w: event, hostname and machine_id are required", fn, ErrValidation)
	}

	rec, err := s.store.GetDevice(ctx, rep.MachineID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrStore, err)
	}
	now := s.now().UTC()
	created := rec == nil
	if created {
		rec = &fleet.DeviceRecord{
			MachineID: rep.MachineID,
			CreatedAt: now,
		}
	}

	cls := fleet.Classify(rep.Event)
	if !cls.Known {
		slog.WarnContext(ctx, "Unrecognized event type, defaulting to online",
			"machine_id", rep.MachineID,
			"event_type", rep.Event,
		)
	}
	rec.Status = cls.Status
	if cls.Liveness {
		// Server receipt time, not the device-reported timestamp.
		t := now
		rec.LastHeartbeatAt = &t
	}
	if cls.Restart {
		rec.CrashCount++
	}

	rec.Hostname = rep.Hostname
	if rep.IPAddress != "" {
		ip := rep.IPAddress
		rec.IPAddress = &ip
	}
	if rep.InstallID != "" {
		id := rep.InstallID
		rec.InstallID = &id
	}
	if rep.Config != nil {
		rec.Config = rep.Config
	}
	if rep.Metrics != nil {
		rec.Metrics = rep.Metrics
		if uptime, ok := uptimeFromMetrics(rep.Metrics); ok {
			rec.UptimeSeconds = uptime
		}
	}
	rec.LastEvent = rep.Event
	rec.LastEventAt = now
	rec.AppendEvent(fleet.EventRecord{
		EventType:  rep.Event,
		ReceivedAt: now,
		Details:    reportDetails(rep),
	})
	rec.UpdatedAt = now

	if err := s.store.UpsertDevice(ctx, rec); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrStore, err)
	}

	changeType := k.ChangeUpdate
	if created {
		changeType = k.ChangeInsert
	}
	s.notifier.Publish(ctx, changeType, rec)

	return rec, nil
}

func reportDetails(rep Report) map[string]any {
	details := make(map[string]any)
	if rep.Timestamp != "" {
		details["timestamp"] = rep.Timestamp
	}
	if rep.ErrorMessage != "" {
		details["error_message"] = rep.ErrorMessage
	}
	if rep.Metrics != nil {
		details["metrics"] = rep.Metrics
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func uptimeFromMetrics(metrics map[string]any) (int64, bool) {
	switch v := metrics["uptime_seconds"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
