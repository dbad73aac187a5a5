package kafka

import (
	"context"

	"kiosk-fleet-health/internal/fleet"

	"github.com/segmentio/kafka-go"
)

// Change types carried on the fleet change topic.
const (
	ChangeInsert = "insert"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// ChangeRecord is the message published for every successful ingestion,
// keyed by machine_id. Delivery is at-least-once with no cross-device
// ordering guarantee.
type ChangeRecord struct {
	EventType string             `json:"event_type"`
	Record    fleet.DeviceRecord `json:"record"`
}

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Lag() int64
	Close() error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
