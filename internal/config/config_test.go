package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, domain.DefaultSlotStepMinutes, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, domain.DefaultBufferMinutes, cfg.Booking.BufferMinutes)
	assert.True(t, cfg.Booking.RevalidateOnCommit)
	assert.Equal(t, domain.DefaultAvailability(), cfg.AvailabilityTable())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9000

[database]
host = "db"
dbname = "salon_test"
password = "from-file"

[booking]
slot_step_minutes = 15
buffer_minutes = 0
revalidate_on_commit = false

[[availability.window]]
weekday = 6
open = "10:00"
close = "14:00"
`)
	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvHTTPPort, "9100")
	t.Setenv(EnvAdminPassword, "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "secret", cfg.Admin.Password)
	assert.Equal(t, 15, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, 0, cfg.Booking.BufferMinutes)
	assert.False(t, cfg.Booking.RevalidateOnCommit)
	assert.Contains(t, cfg.Database.DSN(), "host=db")
	assert.Contains(t, cfg.Database.DSN(), "dbname=salon_test")

	table := cfg.AvailabilityTable()
	assert.Equal(t, []int{6}, table.Weekdays())
	assert.Equal(t, []domain.AvailabilityWindow{{Open: "10:00", Close: "14:00"}}, table[6])
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv(EnvHTTPPort, "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero step", func(c *Config) { c.Booking.SlotStepMinutes = 0 }},
		{"negative buffer", func(c *Config) { c.Booking.BufferMinutes = -1 }},
		{"bad port", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"no admin user", func(c *Config) { c.Admin.Username = "" }},
		{"bad weekday", func(c *Config) {
			c.Availability.Windows = []WindowConfig{{Weekday: 8, Open: "09:00", Close: "10:00"}}
		}},
		{"malformed open", func(c *Config) {
			c.Availability.Windows = []WindowConfig{{Weekday: 1, Open: "9am", Close: "10:00"}}
		}},
		{"inverted window", func(c *Config) {
			c.Availability.Windows = []WindowConfig{{Weekday: 1, Open: "12:00", Close: "10:00"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSlotSettings(t *testing.T) {
	cfg := Default()
	cfg.Booking.SlotStepMinutes = 15
	cfg.Booking.BufferMinutes = 0
	cfg.Availability.Windows = []WindowConfig{{Weekday: 6, Open: "10:00", Close: "14:00"}}

	s := cfg.SlotSettings()
	assert.Equal(t, 15, s.StepMinutes)
	assert.Equal(t, 0, s.BufferMinutes)
	assert.Len(t, s.Availability, 1)
	assert.Len(t, s.Availability[6], 1)
}
