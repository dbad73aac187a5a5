package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk-fleet-health/internal/api"
	"kiosk-fleet-health/internal/watch"

	"github.com/gorilla/websocket"
)

// Demo monitoring client: polls the snapshot endpoint every 30 seconds and
// merges pushed changes, printing every effective status transition it
// observes. Changes come from the websocket stream by default, or straight
// from the Kafka change topic with -source=kafka.

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "collector base URL")
	source := flag.String("source", "ws", "change source: ws or kafka")
	brokers := flag.String("brokers", "localhost:9092", "kafka brokers for -source=kafka")
	topic := flag.String("topic", "device_changes", "change topic for -source=kafka")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	watcher := watch.New(watch.Config{
		Fetcher:      &watch.HTTPFetcher{BaseURL: *baseURL},
		PollInterval: 30 * time.Second,
	})
	go watcher.Run(ctx)

	switch *source {
	case "kafka":
		feed := watch.NewFeed(watch.FeedConfig{
			Brokers:       *brokers,
			ConsumerTopic: *topic,
			Watcher:       watcher,
		})
		go feed.Run(ctx)
		defer feed.Close(ctx)
		fmt.Println("Consuming change topic", *topic, "from", *brokers)
	default:
		wsURL := "ws" + (*baseURL)[len("http"):] + "/api/stream"
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			panic(err)
		}
		defer conn.Close()
		fmt.Println("Connected to change stream at", wsURL)

		go func() {
			for {
				var msg api.StreamMessage
				if err := conn.ReadJSON(&msg); err != nil {
					fmt.Println("Stream closed:", err)
					cancel()
					return
				}
				if msg.Type == "data" && msg.Change != nil {
					watcher.ApplyChange(*msg.Change)
				}
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case tr := <-watcher.Transitions():
			out, _ := json.Marshal(tr)
			fmt.Println("Transition:", string(out))
		}
	}
}
