package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the proximity service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port of the public API server.
// - MonitoringPort: The port of the /healthz and /metrics server.
// - Campus: The reference point handed to the index view.
// - ShutdownTimeout: How long in-flight requests get to finish on shutdown.
// - Registry: Where the facility registry is loaded from.
// - Geocoder: How address-only facilities are resolved.
// - Database: Configuration settings for the PostgreSQL registry source.
type Config struct {
	Env             string
	Port            int
	MonitoringPort  int
	Campus          CampusConfig
	ShutdownTimeout time.Duration
	Registry        RegistryConfig
	Geocoder        GeocoderConfig
	Database        PostgresConfig
}

// CampusConfig is the reference point rendered by the index view.
type CampusConfig struct {
	Latitude  float64
	Longitude float64
}

// RegistryConfig selects the facility source.
type RegistryConfig struct {
	Source   string // static, file or postgres
	FilePath string // used by the file source
}

// GeocoderConfig configures the provider used for facilities listed by address.
type GeocoderConfig struct {
	Type      string // none, google or nominatim
	APIKey    string
	RateLimit int
	Region    string
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

const envPrefix = "NEARBY"

// MustLoad reads an optional .env file and the environment, and panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", 5000)
	v.SetDefault("monitoring_port", 9090)
	v.SetDefault("campus_lat", 13.355034)
	v.SetDefault("campus_lon", 74.792821)
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("registry_source", "static")
	v.SetDefault("geocoder_type", "none")
	v.SetDefault("geocoder_rate", 1)
	v.SetDefault("db.port", "5432")

	// Database variables are shared with other services and carry no prefix.
	for key, env := range map[string]string{
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.user":     "DB_USERNAME",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
	} {
		_ = v.BindEnv(key, env)
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            mustInt(v, "port", "failed to parse port for API server from configuration"),
		MonitoringPort:  mustInt(v, "monitoring_port", "failed to parse port for monitoring server from configuration"),
		ShutdownTimeout: mustDuration(v, "shutdown_timeout", "failed to parse shutdown timeout from configuration"),
		Campus: CampusConfig{
			Latitude:  mustFloat(v, "campus_lat", "failed to parse campus latitude from configuration"),
			Longitude: mustFloat(v, "campus_lon", "failed to parse campus longitude from configuration"),
		},
		Registry: RegistryConfig{
			Source:   v.GetString("registry_source"),
			FilePath: v.GetString("registry_file"),
		},
		Geocoder: GeocoderConfig{
			Type:      v.GetString("geocoder_type"),
			APIKey:    v.GetString("geocoder_key"),
			RateLimit: mustInt(v, "geocoder_rate", "failed to parse geocoder rate limit, must be an integer"),
			Region:    v.GetString("geocoder_region"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
	}
}

func mustInt(v *viper.Viper, key, msg string) int {
	value, err := cast.ToIntE(v.Get(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustFloat(v *viper.Viper, key, msg string) float64 {
	value, err := cast.ToFloat64E(v.Get(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustDuration(v *viper.Viper, key, msg string) time.Duration {
	value, err := cast.ToDurationE(v.Get(key))
	if err != nil {
		panic(msg)
	}

	return value
}
