package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "db"
dbname = "barber"
user = "barber"
password = "secret"

[shop]
timezone = "UTC"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 60, cfg.Shop.MaxDaysInAdvance)
	assert.Equal(t, 3, cfg.RateLimit.Requests)
	assert.Equal(t, "UTC", cfg.Shop.Location().String())
	assert.Equal(t, "host=db port=5432 user=barber password=secret dbname=barber sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "barber"

[shop]
timezone = "UTC"
max_days_in_advance = 30

[rate_limit]
enabled = true
requests = 10
window_seconds = 30
trusted_proxies = ["10.0.0.0/8", "127.0.0.1"]

[whatsapp_bot]
enabled = true
url = "http://bot:3001"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Shop.MaxDaysInAdvance)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, float64(30), cfg.RateLimit.Window().Seconds())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.RateLimit.TrustedProxies)
	assert.Equal(t, "http://bot:3001", cfg.WhatsAppBot.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown key",
			content: `
[database]
host = "db"
dbname = "barber"
[shop]
timezone = "UTC"
unknown = 1
`,
		},
		{
			name: "bad timezone",
			content: `
[database]
host = "db"
dbname = "barber"
[shop]
timezone = "Mars/Olympus"
`,
		},
		{
			name: "bot without url",
			content: `
[database]
host = "db"
dbname = "barber"
[shop]
timezone = "UTC"
[whatsapp_bot]
enabled = true
`,
		},
		{
			name: "bad trusted proxy",
			content: `
[database]
host = "db"
dbname = "barber"
[shop]
timezone = "UTC"
[rate_limit]
trusted_proxies = ["gateway"]
`,
		},
		{
			name: "non positive horizon",
			content: `
[database]
host = "db"
dbname = "barber"
[shop]
timezone = "UTC"
max_days_in_advance = 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
