package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MODELS_DIR", "models")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Database.UsePostgres())
	assert.Equal(t, "users.db", cfg.Database.SQLitePath)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, filepath.Join("models", "scaler.json"), cfg.Artifacts.ScalerPath)
	assert.Equal(t, filepath.Join("models", "model.json"), cfg.Artifacts.FuelModelPath)
	assert.Equal(t, filepath.Join("models", "price_model.json"), cfg.Artifacts.PriceModelPath)
	assert.Equal(t, filepath.Join("models", "Cleaned_Car_data.csv"), cfg.Artifacts.ReferencePath)
	assert.Equal(t, 2*time.Second, cfg.Inference.Timeout)
	assert.True(t, cfg.Inference.ValidatePriceCategories)
	assert.False(t, cfg.Inference.LegacyAlways200)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/cars")
	t.Setenv("MODELS_DIR", "/srv/models")
	t.Setenv("FUEL_MODEL_PATH", "/opt/fuel.onnx")
	t.Setenv("INFERENCE_TIMEOUT", "750ms")
	t.Setenv("LEGACY_ALWAYS_200", "true")
	t.Setenv("PRICE_VALIDATE_CATEGORIES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.UsePostgres())
	assert.Equal(t, "/opt/fuel.onnx", cfg.Artifacts.FuelModelPath)
	assert.Equal(t, filepath.Join("/srv/models", "scaler.json"), cfg.Artifacts.ScalerPath)
	assert.Equal(t, 750*time.Millisecond, cfg.Inference.Timeout)
	assert.True(t, cfg.Inference.LegacyAlways200)
	assert.False(t, cfg.Inference.ValidatePriceCategories)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Inference.Timeout)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
