package db

import (
	"context"
	"testing"
	"time"

	"kiosk-fleet-health/internal/fleet"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var DBPool *DB

// Setup the testcontainer DB before running any ops tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		panic(err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}
	migrationsPath := "./migrations"

	DBPool, err = Init(ctx, Config{
		ConnString:     connStr,
		MigrationsPath: migrationsPath,
	})
	if err != nil {
		panic(err)
	}

	m.Run()
}

func Test_UpsertDevice_InsertThenUpdate(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	heartbeat := now.Add(-5 * time.Second)
	ip := "10.0.0.5"

	rec := &fleet.DeviceRecord{
		MachineID:       "upsert-m1",
		Hostname:        "kiosk-01",
		IPAddress:       &ip,
		Status:          fleet.StatusOnline,
		LastHeartbeatAt: &heartbeat,
		LastEvent:       fleet.EventHeartbeat,
		LastEventAt:     now,
		Config:          map[string]any{"display": "landscape"},
		Events: []fleet.EventRecord{
			{EventType: fleet.EventHeartbeat, ReceivedAt: now, Details: map[string]any{"timestamp": "2026-03-14T11:59:58Z"}},
		},
		Metrics:       map[string]any{"uptime_seconds": float64(3600)},
		UptimeSeconds: 3600,
		CrashCount:    1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	assert.NoError(t, DBPool.UpsertDevice(ctx, rec))

	got, err := DBPool.GetDevice(ctx, "upsert-m1")
	assert.NoError(t, err)
	assert.Equal(t, "kiosk-01", got.Hostname)
	assert.Equal(t, ip, *got.IPAddress)
	assert.Equal(t, fleet.StatusOnline, got.Status)
	assert.Equal(t, int64(1), got.CrashCount)
	assert.Len(t, got.Events, 1)
	assert.Equal(t, "2026-03-14T11:59:58Z", got.Events[0].Details["timestamp"])
	assert.Equal(t, "landscape", got.Config["display"])

	// Second upsert with the same key supersedes mutable fields, preserves
	// created_at, and never produces a second row.
	rec.Hostname = "kiosk-01b"
	rec.CrashCount = 2
	rec.CreatedAt = now.Add(time.Hour)
	rec.UpdatedAt = now.Add(time.Minute)
	assert.NoError(t, DBPool.UpsertDevice(ctx, rec))

	got, err = DBPool.GetDevice(ctx, "upsert-m1")
	assert.NoError(t, err)
	assert.Equal(t, "kiosk-01b", got.Hostname)
	assert.Equal(t, int64(2), got.CrashCount)
	assert.Equal(t, now, got.CreatedAt.UTC())
	assert.Equal(t, now.Add(time.Minute), got.UpdatedAt.UTC())

	devices, err := DBPool.ListDevices(ctx)
	assert.NoError(t, err)
	count := 0
	for _, d := range devices {
		if d.MachineID == "upsert-m1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func Test_GetDevice_Absent(t *testing.T) {
	got, err := DBPool.GetDevice(context.Background(), "never-seen")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func Test_ListDevices_Ordering(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	hbOld := now.Add(-10 * time.Minute)
	hbNew := now.Add(-10 * time.Second)

	seed := []*fleet.DeviceRecord{
		{MachineID: "order-m1", Hostname: "kiosk-01", LastHeartbeatAt: &hbOld, LastEventAt: now, Status: fleet.StatusOnline, CreatedAt: now, UpdatedAt: now},
		{MachineID: "order-m2", Hostname: "kiosk-02", LastHeartbeatAt: &hbNew, LastEventAt: now, Status: fleet.StatusOnline, CreatedAt: now, UpdatedAt: now},
		{MachineID: "order-m3", Hostname: "kiosk-03", LastEventAt: now, Status: fleet.StatusUnknown, CreatedAt: now, UpdatedAt: now},
	}
	for _, rec := range seed {
		assert.NoError(t, DBPool.UpsertDevice(ctx, rec))
	}

	devices, err := DBPool.ListDevices(ctx)
	assert.NoError(t, err)

	// Most recent heartbeat first, never-heartbeat devices last.
	positions := make(map[string]int)
	i := 0
	for _, d := range devices {
		switch d.MachineID {
		case "order-m1", "order-m2", "order-m3":
			positions[d.MachineID] = i
			i++
		}
	}
	assert.Len(t, positions, 3)
	assert.Less(t, positions["order-m2"], positions["order-m1"])
	assert.Less(t, positions["order-m1"], positions["order-m3"])
}

func Test_UpsertDevice_NullableFields(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	rec := &fleet.DeviceRecord{
		MachineID:   "null-m1",
		Hostname:    "kiosk-09",
		Status:      fleet.StatusUnknown,
		LastEvent:   "telemetry_blob",
		LastEventAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	assert.NoError(t, DBPool.UpsertDevice(ctx, rec))

	got, err := DBPool.GetDevice(ctx, "null-m1")
	assert.NoError(t, err)
	assert.Nil(t, got.IPAddress)
	assert.Nil(t, got.InstallID)
	assert.Nil(t, got.LastHeartbeatAt)
	assert.Empty(t, got.Events)
}
