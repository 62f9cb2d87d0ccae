package config_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/nearby/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 9090, cfg.MonitoringPort)
	assert.InDelta(t, 13.355034, cfg.Campus.Latitude, 0)
	assert.InDelta(t, 74.792821, cfg.Campus.Longitude, 0)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "static", cfg.Registry.Source)
	assert.Equal(t, "none", cfg.Geocoder.Type)
	assert.Equal(t, 1, cfg.Geocoder.RateLimit)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("NEARBY_ENV", "local")
	t.Setenv("NEARBY_PORT", "8081")
	t.Setenv("NEARBY_MONITORING_PORT", "9191")
	t.Setenv("NEARBY_CAMPUS_LAT", "12.5")
	t.Setenv("NEARBY_CAMPUS_LON", "-70.25")
	t.Setenv("NEARBY_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("NEARBY_REGISTRY_SOURCE", "file")
	t.Setenv("NEARBY_REGISTRY_FILE", "/etc/nearby/facilities.yaml")
	t.Setenv("NEARBY_GEOCODER_TYPE", "nominatim")
	t.Setenv("NEARBY_GEOCODER_KEY", "testAPIKey")
	t.Setenv("NEARBY_GEOCODER_RATE", "2")
	t.Setenv("NEARBY_GEOCODER_REGION", "in")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 9191, cfg.MonitoringPort)
	assert.InDelta(t, 12.5, cfg.Campus.Latitude, 0)
	assert.InDelta(t, -70.25, cfg.Campus.Longitude, 0)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "file", cfg.Registry.Source)
	assert.Equal(t, "/etc/nearby/facilities.yaml", cfg.Registry.FilePath)
	assert.Equal(t, "nominatim", cfg.Geocoder.Type)
	assert.Equal(t, "testAPIKey", cfg.Geocoder.APIKey)
	assert.Equal(t, 2, cfg.Geocoder.RateLimit)
	assert.Equal(t, "in", cfg.Geocoder.Region)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("NEARBY_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for API server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_MonitoringPortError(t *testing.T) {
	t.Setenv("NEARBY_MONITORING_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_CampusError(t *testing.T) {
	t.Setenv("NEARBY_CAMPUS_LAT", "north")

	assert.PanicsWithValue(t, "failed to parse campus latitude from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_ShutdownTimeoutError(t *testing.T) {
	t.Setenv("NEARBY_SHUTDOWN_TIMEOUT", "soon")

	assert.PanicsWithValue(t, "failed to parse shutdown timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_GeocoderRateError(t *testing.T) {
	t.Setenv("NEARBY_GEOCODER_RATE", "fast")

	assert.PanicsWithValue(t, "failed to parse geocoder rate limit, must be an integer", func() {
		config.MustLoad()
	})
}
