package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosafe/impact-engine/internal/impact"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Engine.DepthThresholdM)
	assert.Equal(t, 2500.0, cfg.Engine.PixelAreaM2)
	assert.Equal(t, 100000.0, cfg.Engine.DensityDivisor)
	assert.Equal(t, 0.0005, cfg.Engine.ResolutionCutoffDeg)
	assert.Equal(t, []float64{3, 5, 10}, cfg.Volcano.RadiiKM)
	assert.Equal(t, 64, cfg.Volcano.CircleSegments)
	// Default class count tracks the colour ramp, one class per colour.
	assert.Equal(t, impact.NumClasses, cfg.Volcano.NumClasses)
	assert.Equal(t, 8, cfg.Volcano.NumClasses)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "impact-engine.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GEOSAFE_SERVER_PORT", "9090")
	t.Setenv("GEOSAFE_ENGINE_DEPTH_THRESHOLD_M", "0.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Engine.DepthThresholdM)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
