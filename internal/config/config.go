// Package config loads application configuration and installs the global
// logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geosafe/impact-engine/internal/impact"
)

// Config holds the full application configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Volcano VolcanoConfig `yaml:"volcano" mapstructure:"volcano"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// EngineConfig tunes the flood overlay. The pixel area and density divisor
// are historical constants tied to a legacy dataset's native resolution and
// are deliberately configurable.
type EngineConfig struct {
	DepthThresholdM     float64 `yaml:"depth_threshold_m" mapstructure:"depth_threshold_m"`
	PixelAreaM2         float64 `yaml:"pixel_area_m2" mapstructure:"pixel_area_m2"`
	DensityDivisor      float64 `yaml:"density_divisor" mapstructure:"density_divisor"`
	ResolutionCutoffDeg float64 `yaml:"resolution_cutoff_deg" mapstructure:"resolution_cutoff_deg"`
}

// VolcanoConfig tunes the volcano evacuation function.
type VolcanoConfig struct {
	RadiiKM        []float64 `yaml:"radii_km" mapstructure:"radii_km"`
	CircleSegments int       `yaml:"circle_segments" mapstructure:"circle_segments"`
	NumClasses     int       `yaml:"num_classes" mapstructure:"num_classes"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port       int     `yaml:"port" mapstructure:"port"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst  int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// StoreConfig configures the run-history store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOSAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("engine.depth_threshold_m", 0.1)
	v.SetDefault("engine.pixel_area_m2", 2500.0)
	v.SetDefault("engine.density_divisor", 100000.0)
	v.SetDefault("engine.resolution_cutoff_deg", 0.0005)
	v.SetDefault("volcano.radii_km", []float64{3, 5, 10})
	v.SetDefault("volcano.circle_segments", 64)
	v.SetDefault("volcano.num_classes", impact.NumClasses)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_sec", 2.0)
	v.SetDefault("server.rate_burst", 5)
	v.SetDefault("store.path", "impact-engine.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
