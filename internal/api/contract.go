package api

import (
	"time"

	"kiosk-fleet-health/internal/fleet"
	k "kiosk-fleet-health/internal/kafka"
)

type IngestResponse struct {
	Success bool                `json:"success"`
	Device  *fleet.DeviceRecord `json:"device,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type DeviceListResponse struct {
	Success   bool                 `json:"success"`
	Devices   []fleet.DeviceRecord `json:"devices"`
	Timestamp string               `json:"timestamp"`
}

type MetricsResponse struct {
	Success   bool               `json:"success"`
	Metrics   fleet.FleetMetrics `json:"metrics"`
	Timestamp string             `json:"timestamp"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// StreamMessage is one websocket frame on the change stream.
type StreamMessage struct {
	Type      string          `json:"type"` // "data" or "ping"
	Change    *k.ChangeRecord `json:"change,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
