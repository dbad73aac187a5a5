package watch

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"kiosk-fleet-health/internal/fleet"
	k "kiosk-fleet-health/internal/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubFetcher struct {
	devices []fleet.DeviceRecord
	err     error
	calls   int
}

func (f *stubFetcher) FetchDevices(context.Context) ([]fleet.DeviceRecord, error) {
	f.calls++
	return f.devices, f.err
}

func newTestWatcher(f *stubFetcher, now time.Time) *Watcher {
	w := New(Config{Fetcher: f})
	w.now = func() time.Time { return now }
	return w
}

func drainTransitions(w *Watcher) []Transition {
	var out []Transition
	for {
		select {
		case tr := <-w.Transitions():
			out = append(out, tr)
		default:
			return out
		}
	}
}

func Test_Poll_FullReplace(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-10 * time.Second)

	fetcher := &stubFetcher{devices: []fleet.DeviceRecord{
		{MachineID: "m1", Status: fleet.StatusOnline, LastHeartbeatAt: &fresh, UpdatedAt: now},
	}}
	w := newTestWatcher(fetcher, now)

	assert.NoError(t, w.Poll(context.Background()))
	assert.Len(t, w.Devices(), 1)

	// A device that vanished from the snapshot vanishes from the view.
	fetcher.devices = nil
	assert.NoError(t, w.Poll(context.Background()))
	assert.Empty(t, w.Devices())
}

func Test_Poll_EmitsStalenessTransition(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-10 * time.Second)

	fetcher := &stubFetcher{devices: []fleet.DeviceRecord{
		{MachineID: "m1", Status: fleet.StatusOnline, LastHeartbeatAt: &fresh, UpdatedAt: now},
	}}
	w := newTestWatcher(fetcher, now)
	assert.NoError(t, w.Poll(context.Background()))
	drainTransitions(w)

	// Three minutes of silence: no push ever fires, only the poll can
	// surface the offline transition.
	later := now.Add(3 * time.Minute)
	w.now = func() time.Time { return later }
	assert.NoError(t, w.Poll(context.Background()))

	transitions := drainTransitions(w)
	assert.Len(t, transitions, 1)
	assert.Equal(t, "m1", transitions[0].MachineID)
	assert.Equal(t, fleet.StatusOnline, transitions[0].From)
	assert.Equal(t, fleet.StatusOffline, transitions[0].To)
}

func Test_Poll_ErrorDeviceNoSpuriousOffline(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-10 * time.Minute)

	// Stored status error with stale heartbeats: effective status is error
	// on both observations, so no transition fires.
	fetcher := &stubFetcher{devices: []fleet.DeviceRecord{
		{MachineID: "m1", Status: fleet.StatusError, LastHeartbeatAt: &stale, UpdatedAt: now},
	}}
	w := newTestWatcher(fetcher, now)
	assert.NoError(t, w.Poll(context.Background()))
	drainTransitions(w)

	later := now.Add(5 * time.Minute)
	w.now = func() time.Time { return later }
	assert.NoError(t, w.Poll(context.Background()))

	assert.Empty(t, drainTransitions(w))
}

func Test_Poll_FetchError(t *testing.T) {
	fetcher := &stubFetcher{err: assert.AnError}
	w := newTestWatcher(fetcher, time.Now())
	assert.ErrorIs(t, w.Poll(context.Background()), assert.AnError)
}

func Test_ApplyChange_PatchesSingleDevice(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-10 * time.Second)

	fetcher := &stubFetcher{devices: []fleet.DeviceRecord{
		{MachineID: "m1", Status: fleet.StatusOnline, LastHeartbeatAt: &fresh, UpdatedAt: now.Add(-time.Minute)},
		{MachineID: "m2", Status: fleet.StatusOnline, LastHeartbeatAt: &fresh, UpdatedAt: now.Add(-time.Minute)},
	}}
	w := newTestWatcher(fetcher, now)
	assert.NoError(t, w.Poll(context.Background()))
	drainTransitions(w)

	w.ApplyChange(k.ChangeRecord{
		EventType: k.ChangeUpdate,
		Record:    fleet.DeviceRecord{MachineID: "m1", Status: fleet.StatusError, LastHeartbeatAt: &fresh, UpdatedAt: now},
	})

	transitions := drainTransitions(w)
	assert.Len(t, transitions, 1)
	assert.Equal(t, fleet.StatusError, transitions[0].To)

	// Only m1 was patched.
	for _, rec := range w.Devices() {
		if rec.MachineID == "m2" {
			assert.Equal(t, fleet.StatusOnline, rec.Status)
		}
	}
}

func Test_ApplyChange_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-10 * time.Second)

	w := newTestWatcher(&stubFetcher{}, now)

	change := k.ChangeRecord{
		EventType: k.ChangeUpdate,
		Record:    fleet.DeviceRecord{MachineID: "m1", Status: fleet.StatusError, LastHeartbeatAt: &fresh, UpdatedAt: now},
	}
	w.ApplyChange(change)
	// At-least-once delivery: the duplicate is a no-op.
	w.ApplyChange(change)

	transitions := drainTransitions(w)
	assert.Len(t, transitions, 1)
	assert.Len(t, w.Devices(), 1)
}

func Test_ApplyChange_StalePatchIgnored(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-10 * time.Second)

	fetcher := &stubFetcher{devices: []fleet.DeviceRecord{
		{MachineID: "m1", Status: fleet.StatusOnline, LastHeartbeatAt: &fresh, UpdatedAt: now},
	}}
	w := newTestWatcher(fetcher, now)
	assert.NoError(t, w.Poll(context.Background()))
	drainTransitions(w)

	// The poll response is authoritative; an older pushed record loses.
	w.ApplyChange(k.ChangeRecord{
		EventType: k.ChangeUpdate,
		Record:    fleet.DeviceRecord{MachineID: "m1", Status: fleet.StatusError, UpdatedAt: now.Add(-time.Minute)},
	})

	assert.Empty(t, drainTransitions(w))
	assert.Equal(t, fleet.StatusOnline, w.Devices()[0].Status)
}

func Test_Feed_ProcessMessage(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	w := newTestWatcher(&stubFetcher{}, now)

	fresh := now.Add(-time.Second)
	change := k.ChangeRecord{
		EventType: k.ChangeInsert,
		Record:    fleet.DeviceRecord{MachineID: "m1", Status: fleet.StatusOnline, LastHeartbeatAt: &fresh, UpdatedAt: now},
	}

	t.Run("applies a decoded change", func(t *testing.T) {
		value, _ := json.Marshal(change)
		mockReader := k.NewMockReader(t)
		mockReader.EXPECT().ReadMessage(mock.Anything).Return(kafkago.Message{Key: []byte("m1"), Value: value}, nil)

		feed := &Feed{reader: mockReader, watcher: w}
		assert.NoError(t, feed.ProcessMessage(context.Background()))
		assert.Len(t, w.Devices(), 1)
	})

	t.Run("read error", func(t *testing.T) {
		mockReader := k.NewMockReader(t)
		mockReader.EXPECT().ReadMessage(mock.Anything).Return(kafkago.Message{}, assert.AnError)

		feed := &Feed{reader: mockReader, watcher: w}
		assert.ErrorIs(t, feed.ProcessMessage(context.Background()), ErrReadMessage)
	})

	t.Run("malformed payload", func(t *testing.T) {
		mockReader := k.NewMockReader(t)
		mockReader.EXPECT().ReadMessage(mock.Anything).Return(kafkago.Message{Value: []byte("not-a-json")}, nil)

		feed := &Feed{reader: mockReader, watcher: w}
		assert.ErrorIs(t, feed.ProcessMessage(context.Background()), ErrDecodeChange)
	})
}
