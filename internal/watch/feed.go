package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	k "kiosk-fleet-health/internal/kafka"
	"kiosk-fleet-health/internal/worker"

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage  = errors.New("error reading message")
	ErrDecodeChange = errors.New("error decoding change record")
)

type FeedConfig struct {
	Brokers       string
	ConsumerTopic string
	Watcher       *Watcher
}

// Feed consumes the fleet change topic and patches the watcher's view with
// each record. It reads from the latest offset: history is irrelevant because
// the next poll replaces the view anyway.
type Feed struct {
	worker  *worker.Worker
	reader  k.Reader
	watcher *Watcher
}

func NewFeed(cfg FeedConfig) *Feed {
	feed := &Feed{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{cfg.Brokers},
			Topic:       cfg.ConsumerTopic,
			StartOffset: kafka.LastOffset,
		}),
		watcher: cfg.Watcher,
	}
	feed.worker = worker.New(worker.Config{
		Name:      "change-feed",
		Processor: feed,
	})
	return feed
}

func (f *Feed) Run(ctx context.Context) {
	f.worker.Run(ctx)
}

func (f *Feed) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing change feed resources...")
	f.reader.Close()
}

func (f *Feed) ProcessMessage(ctx context.Context) error {
	const fn = "Feed:ProcessMessage"
	m, err := f.reader.ReadMessage(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	var change k.ChangeRecord
	if err := json.Unmarshal(m.Value, &change); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrDecodeChange, err)
	}
	f.watcher.ApplyChange(change)
	return nil
}
