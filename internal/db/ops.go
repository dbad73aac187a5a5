package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kiosk-fleet-health/internal/fleet"

	"github.com/georgysavva/scany/pgxscan"
)

var (
	ErrUpsertFailed = errors.New("upsert operation failed")
	ErrSelectFailed = errors.New("select operation failed")
	ErrEncodeFailed = errors.New("record encode failed")
)

const deviceColumns = `
	machine_id,
	hostname,
	ip_address,
	status,
	last_heartbeat_at,
	last_event,
	last_event_at,
	install_id,
	config,
	events,
	metrics,
	uptime_seconds,
	crash_count,
	created_at,
	updated_at`

// UpsertDevice writes the full record keyed by machine_id. Last writer wins
// on conflict; created_at is preserved from the original insert.
func (db *DB) UpsertDevice(ctx context.Context, rec *fleet.DeviceRecord) error {
	const fn = "DB:UpsertDevice"
	eventsJSON, err := json.Marshal(rec.Events)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrEncodeFailed, err)
	}
	configJSON, err := json.Marshal(rec.Config)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrEncodeFailed, err)
	}
	metricsJSON, err := json.Marshal(rec.Metrics)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrEncodeFailed, err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO devices (`+deviceColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (machine_id) DO UPDATE SET
			hostname          = EXCLUDED.hostname,
			ip_address        = EXCLUDED.ip_address,
			status            = EXCLUDED.status,
			last_heartbeat_at = EXCLUDED.last_heartbeat_at,
			last_event        = EXCLUDED.last_event,
			last_event_at     = EXCLUDED.last_event_at,
			install_id        = EXCLUDED.install_id,
			config            = EXCLUDED.config,
			events            = EXCLUDED.events,
			metrics           = EXCLUDED.metrics,
			uptime_seconds    = EXCLUDED.uptime_seconds,
			crash_count       = EXCLUDED.crash_count,
			updated_at        = EXCLUDED.updated_at
	`,
		rec.MachineID,
		rec.Hostname,
		rec.IPAddress,
		rec.Status,
		rec.LastHeartbeatAt,
		rec.LastEvent,
		rec.LastEventAt,
		rec.InstallID,
		configJSON,
		eventsJSON,
		metricsJSON,
		rec.UptimeSeconds,
		rec.CrashCount,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrUpsertFailed, err)
	}
	return nil
}

// GetDevice returns nil with no error when the device has never reported.
func (db *DB) GetDevice(ctx context.Context, machineID string) (*fleet.DeviceRecord, error) {
	const fn = "DB:GetDevice"
	var rec fleet.DeviceRecord
	err := pgxscan.Get(ctx, db.pool, &rec, `
		SELECT `+deviceColumns+`
		FROM devices
		WHERE machine_id = $1
	`, machineID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return &rec, nil
}

// ListDevices returns the whole fleet, most recently heartbeating first,
// devices that never heartbeat last.
func (db *DB) ListDevices(ctx context.Context) ([]fleet.DeviceRecord, error) {
	const fn = "DB:ListDevices"
	var devices []fleet.DeviceRecord
	err := pgxscan.Select(ctx, db.pool, &devices, `
		SELECT `+deviceColumns+`
		FROM devices
		ORDER BY last_heartbeat_at DESC NULLS LAST, machine_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return devices, nil
}
