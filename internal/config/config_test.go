package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_Load_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "device_changes", cfg.ChangeTopic)
	assert.Equal(t, 120*time.Second, cfg.StalenessThreshold)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 256, cfg.PublishBuffer)
}

func Test_Load_EnvOverride(t *testing.T) {
	t.Setenv("FLEET_LISTEN_ADDR", ":9090")
	t.Setenv("FLEET_STALENESS_THRESHOLD", "90s")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 90*time.Second, cfg.StalenessThreshold)
}
