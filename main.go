package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"kiosk-fleet-health/internal/api"
	"kiosk-fleet-health/internal/config"
	"kiosk-fleet-health/internal/db"
	"kiosk-fleet-health/internal/ingest"
	"kiosk-fleet-health/internal/notify"

	"github.com/go-chi/chi/v5"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	slog.InfoContext(ctx, "Starting service...")

	cfg := config.Load()

	store, err := db.Init(ctx, db.Config{
		ConnString:     cfg.DatabaseURL,
		MigrationsPath: cfg.MigrationsPath,
	})
	if err != nil {
		panic(err)
	}
	defer store.Close()

	hub := notify.NewHub(cfg.SubscriberBuffer)
	notifier := notify.New(notify.Config{
		Brokers:        cfg.KafkaBrokers,
		PublisherTopic: cfg.ChangeTopic,
		Buffer:         cfg.PublishBuffer,
		Hub:            hub,
	})

	ingestor := ingest.New(ingest.Config{
		Store:    store,
		Notifier: notifier,
	})

	handlers := api.New(api.Config{
		DB:        store,
		Ingestor:  ingestor,
		Hub:       hub,
		Staleness: cfg.StalenessThreshold,
	})

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	handlers.Routes(r)

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		notifier.Run(ctx)
	}()

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.InfoContext(ctx, "HTTP server listening...", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
			cancel()
		}
	}()

	go func() {
		<-sigs
		cancel()
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "HTTP server shutdown error", "error", err)
	}

	wg.Wait()

	notifier.Close(shutdownCtx)
}
