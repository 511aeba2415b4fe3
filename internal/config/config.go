package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Artifacts ArtifactsConfig
	Inference InferenceConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

// DatabaseConfig selects the account store: Postgres when URL is set,
// otherwise a local SQLite file.
type DatabaseConfig struct {
	URL             string
	SQLitePath      string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) UsePostgres() bool {
	return d.URL != ""
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

type ArtifactsConfig struct {
	ScalerPath     string
	FuelModelPath  string
	PriceModelPath string
	ReferencePath  string
	OnnxRuntimeLib string
	OnnxInputName  string
	OnnxOutputName string
}

type InferenceConfig struct {
	Timeout                 time.Duration
	ValidatePriceCategories bool
	LegacyAlways200         bool
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "users.db")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("SECRET_KEY", "dev_secret")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE", "session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("MODELS_DIR", "models")
	v.SetDefault("SCALER_PATH", "")
	v.SetDefault("FUEL_MODEL_PATH", "")
	v.SetDefault("PRICE_MODEL_PATH", "")
	v.SetDefault("REFERENCE_DATA_PATH", "")
	v.SetDefault("ONNX_RUNTIME_LIB", "")
	v.SetDefault("ONNX_INPUT_NAME", "input")
	v.SetDefault("ONNX_OUTPUT_NAME", "output")
	v.SetDefault("INFERENCE_TIMEOUT", "2s")
	v.SetDefault("PRICE_VALIDATE_CATEGORIES", true)
	v.SetDefault("LEGACY_ALWAYS_200", false)

	// Env
	v.AutomaticEnv()

	modelsDir := v.GetString("MODELS_DIR")
	orDefault := func(key, file string) string {
		if p := v.GetString(key); p != "" {
			return p
		}
		return filepath.Join(modelsDir, file)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: durationOr(v, "SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_CONNS"),
			ConnMaxLifetime: durationOr(v, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Session: SessionConfig{
			Secret:     v.GetString("SECRET_KEY"),
			TTL:        durationOr(v, "SESSION_TTL", 24*time.Hour),
			CookieName: v.GetString("SESSION_COOKIE"),
			Secure:     v.GetBool("SESSION_COOKIE_SECURE"),
		},
		Artifacts: ArtifactsConfig{
			ScalerPath:     orDefault("SCALER_PATH", "scaler.json"),
			FuelModelPath:  orDefault("FUEL_MODEL_PATH", "model.json"),
			PriceModelPath: orDefault("PRICE_MODEL_PATH", "price_model.json"),
			ReferencePath:  orDefault("REFERENCE_DATA_PATH", "Cleaned_Car_data.csv"),
			OnnxRuntimeLib: v.GetString("ONNX_RUNTIME_LIB"),
			OnnxInputName:  v.GetString("ONNX_INPUT_NAME"),
			OnnxOutputName: v.GetString("ONNX_OUTPUT_NAME"),
		},
		Inference: InferenceConfig{
			Timeout:                 durationOr(v, "INFERENCE_TIMEOUT", 2*time.Second),
			ValidatePriceCategories: v.GetBool("PRICE_VALIDATE_CATEGORIES"),
			LegacyAlways200:         v.GetBool("LEGACY_ALWAYS_200"),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT %d", cfg.Server.Port)
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("SECRET_KEY must not be empty")
	}
	if cfg.Session.Secret == "dev_secret" {
		log.Warn("SECRET_KEY is the development default; set it in production")
	}

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
