package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this_is_a_test_secret_key_with_32_chars_minimum"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DEFAULT_FEED_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 9, cfg.DefaultFeedLimit)
	assert.Equal(t, 50, cfg.MaxPageLimit)
	assert.Equal(t, 72, cfg.TokenTTLHours)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/tmp/plants.db")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/plants.db", cfg.SQLitePath)
	assert.Equal(t, 72, cfg.TokenTTLHours, "unparsable ints fall back to the default")
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBDriver:         DriverPostgres,
			PostgresUrl:      "host=localhost user=plantly dbname=plantly",
			JWTSecret:        testSecret,
			TokenTTLHours:    72,
			DefaultFeedLimit: 9,
			MaxPageLimit:     50,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "Missing postgres DSN", mutate: func(c *Config) { c.PostgresUrl = "" }},
		{name: "Unknown driver", mutate: func(c *Config) { c.DBDriver = "oracle" }},
		{name: "Missing JWT secret", mutate: func(c *Config) { c.JWTSecret = "" }},
		{name: "Short JWT secret", mutate: func(c *Config) { c.JWTSecret = "short" }},
		{name: "Zero token TTL", mutate: func(c *Config) { c.TokenTTLHours = 0 }},
		{name: "Feed limit above max", mutate: func(c *Config) { c.DefaultFeedLimit = 51 }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, (&Config{}).AllowedOrigins())

	cfg := &Config{CORSOrigins: "https://plantly.app, http://localhost:3000"}
	assert.Equal(t, []string{"https://plantly.app", "http://localhost:3000"}, cfg.AllowedOrigins())
}

func TestRedactToken(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uri: "/api/v1/notifications/stream?token=eyJhbGciOi", want: "/api/v1/notifications/stream?token=REDACTED"},
		{uri: "/api/v1/feed/public?limit=5&token=abc", want: "/api/v1/feed/public?limit=5&token=REDACTED"},
		{uri: "/api/v1/feed/public?limit=5", want: "/api/v1/feed/public?limit=5"},
		{uri: "/health", want: "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, redactToken(tt.uri))
		})
	}
}
