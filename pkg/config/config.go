package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Storage configuration
	Storage StorageConfig `mapstructure:"storage"`

	// Clinic scheduling configuration
	Clinic ClinicConfig `mapstructure:"clinic"`

	// JWT configuration
	JWT JWTConfig `mapstructure:"jwt"`

	// Monitoring configuration
	Monitoring MonitoringConfig `mapstructure:"monitoring"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// StorageConfig selects and configures the key-value backend.
// Driver is one of "memory", "badger" or "postgres".
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	DSN      string `mapstructure:"dsn"`
	SeedDemo bool   `mapstructure:"seed_demo"`
}

// ClinicConfig holds the appointment slot grid configuration.
// The defaults reproduce the clinic's historical hours: half-hour slots
// from 08:00 through 19:30, 24 slots per day.
type ClinicConfig struct {
	OpeningTime string `mapstructure:"opening_time"`
	ClosingTime string `mapstructure:"closing_time"`
	SlotMinutes int    `mapstructure:"slot_minutes"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SecretKey      string `mapstructure:"secret_key"`
	AccessTokenTTL int    `mapstructure:"access_token_ttl"`
	Issuer         string `mapstructure:"issuer"`
}

// MonitoringConfig holds monitoring configuration
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/clinica")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables
	overrideWithEnv(&config)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	// Storage defaults
	viper.SetDefault("storage.driver", "badger")
	viper.SetDefault("storage.path", "./data/clinica")
	viper.SetDefault("storage.seed_demo", true)

	// Clinic defaults
	viper.SetDefault("clinic.opening_time", "08:00")
	viper.SetDefault("clinic.closing_time", "19:30")
	viper.SetDefault("clinic.slot_minutes", 30)

	// JWT defaults
	viper.SetDefault("jwt.access_token_ttl", 3600) // 1 hour
	viper.SetDefault("jwt.issuer", "clinica-joya")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Logging defaults
	viper.SetDefault("log_level", "info")
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if driver := os.Getenv("STORAGE_DRIVER"); driver != "" {
		config.Storage.Driver = driver
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.Storage.DSN = dsn
	}

	if jwtSecret := os.Getenv("JWT_SECRET_KEY"); jwtSecret != "" {
		config.JWT.SecretKey = jwtSecret
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.JWT.SecretKey == "" {
		return fmt.Errorf("JWT secret key is required")
	}

	switch config.Storage.Driver {
	case "memory":
	case "badger":
		if config.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the badger driver")
		}
	case "postgres":
		if config.Storage.DSN == "" {
			return fmt.Errorf("storage DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %s", config.Storage.Driver)
	}

	if _, err := time.Parse("15:04", config.Clinic.OpeningTime); err != nil {
		return fmt.Errorf("invalid clinic opening time: %w", err)
	}
	if _, err := time.Parse("15:04", config.Clinic.ClosingTime); err != nil {
		return fmt.Errorf("invalid clinic closing time: %w", err)
	}
	if config.Clinic.SlotMinutes <= 0 {
		return fmt.Errorf("slot minutes must be positive")
	}

	return nil
}
