package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"kiosk-fleet-health/internal/fleet"
	"kiosk-fleet-health/internal/ingest"
	"kiosk-fleet-health/internal/notify"

	"github.com/go-chi/chi/v5"
)

type repository interface {
	ListDevices(ctx context.Context) ([]fleet.DeviceRecord, error)
}

type ingestor interface {
	Ingest(ctx context.Context, rep ingest.Report) (*fleet.DeviceRecord, error)
}

type API struct {
	DB        repository
	Ingestor  ingestor
	Hub       *notify.Hub
	staleness time.Duration
	now       func() time.Time
}

type Config struct {
	DB        repository
	Ingestor  ingestor
	Hub       *notify.Hub
	Staleness time.Duration
}

func New(cfg Config) *API {
	staleness := cfg.Staleness
	if staleness <= 0 {
		staleness = fleet.DefaultStalenessThreshold
	}
	return &API{
		DB:        cfg.DB,
		Ingestor:  cfg.Ingestor,
		Hub:       cfg.Hub,
		staleness: staleness,
		now:       time.Now,
	}
}

func (a *API) Routes(r chi.Router) {
	r.Post("/api/events", a.CreateEvent)
	r.Get("/api/devices", a.ListDevices)
	r.Get("/api/metrics", a.GetMetrics)
	r.Get("/api/stream", a.StreamChanges)
}

func (a *API) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var rep ingest.Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rec, err := a.Ingestor.Ingest(r.Context(), rep)
	if err != nil {
		if errors.Is(err, ingest.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, IngestResponse{Success: true, Device: rec})
}

func (a *API) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := a.DB.ListDevices(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if devices == nil {
		devices = []fleet.DeviceRecord{}
	}

	now := a.now().UTC()
	// Stored status is only the state at last ingestion; silence drives no
	// write, so staleness is re-checked on every read.
	for i := range devices {
		devices[i].Status = fleet.EffectiveStatus(&devices[i], now, a.staleness)
	}

	writeJSON(w, http.StatusOK, DeviceListResponse{
		Success:   true,
		Devices:   devices,
		Timestamp: now.Format(time.RFC3339),
	})
}

func (a *API) GetMetrics(w http.ResponseWriter, r *http.Request) {
	devices, err := a.DB.ListDevices(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	now := a.now().UTC()
	writeJSON(w, http.StatusOK, MetricsResponse{
		Success:   true,
		Metrics:   fleet.ComputeMetrics(devices, now, a.staleness),
		Timestamp: now.Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
