package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"kiosk-fleet-health/internal/fleet"
	k "kiosk-fleet-health/internal/kafka"
	"kiosk-fleet-health/internal/worker"

	"github.com/segmentio/kafka-go"
)

var (
	ErrMarshalChange = errors.New("error marshalling change record")
	ErrWriteMessage  = errors.New("error writing message")
)

type Config struct {
	Brokers        string
	PublisherTopic string
	Buffer         int
	Hub            *Hub
}

// Notifier fans a device change out to the in-process hub and onto the fleet
// change topic. Publish never blocks and never fails the caller: delivery is
// best-effort by design, the poll fallback covers losses.
type Notifier struct {
	worker *worker.Worker
	writer k.Writer
	hub    *Hub
	queue  chan k.ChangeRecord
}

func New(cfg Config) *Notifier {
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 256
	}
	n := &Notifier{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers: []string{cfg.Brokers},
			Topic:   cfg.PublisherTopic,
		}),
		hub:   cfg.Hub,
		queue: make(chan k.ChangeRecord, buffer),
	}
	n.worker = worker.New(worker.Config{
		Name:      "notify-publisher",
		Processor: n,
	})
	return n
}

func (n *Notifier) Run(ctx context.Context) {
	n.worker.Run(ctx)
}

func (n *Notifier) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing notifier resources...")
	n.writer.Close()
}

// Publish enqueues a change for the Kafka publisher and broadcasts it to hub
// subscribers. A full queue drops the message with a log line rather than
// slowing ingestion down.
func (n *Notifier) Publish(ctx context.Context, changeType string, rec *fleet.DeviceRecord) {
	change := k.ChangeRecord{EventType: changeType, Record: *rec}
	n.hub.Broadcast(change)
	select {
	case n.queue <- change:
	default:
		slog.WarnContext(ctx, "Publish queue full, dropping change",
			"machine_id", rec.MachineID,
			"change_type", changeType,
		)
	}
}

// ProcessMessage drains one change from the queue and writes it to the
// change topic, keyed by machine_id so per-device ordering survives
// partitioning.
func (n *Notifier) ProcessMessage(ctx context.Context) error {
	const fn = "Notifier:ProcessMessage"
	select {
	case <-ctx.Done():
		return ctx.Err()
	case change := <-n.queue:
		out, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrMarshalChange, err)
		}
		err = n.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(change.Record.MachineID),
			Value: out,
		})
		if err != nil {
			return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
		}
		slog.InfoContext(ctx, "Published device change",
			"machine_id", change.Record.MachineID,
			"change_type", change.EventType,
		)
	}
	return nil
}
