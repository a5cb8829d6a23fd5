package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(newViper(map[string]any{"GOOGLE_SHEET_ID": "sheet-123"}))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendGoogle, cfg.StoreBackend)
	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	assert.Equal(t, 4, cfg.MaxConcurrentUploads)
	assert.Equal(t, 2*time.Minute, cfg.SubmitTimeout)
	assert.Equal(t, 5*time.Minute, cfg.QuestionCacheTTL)
	assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	assert.Equal(t, "http://localhost:8080/files", cfg.FilesURL())
	assert.True(t, cfg.AllowAllOrigins())
	assert.NoError(t, cfg.Validate())
}

func TestFromViper_Overrides(t *testing.T) {
	cfg := FromViper(newViper(map[string]any{
		"STORE_BACKEND":          " SQLite ",
		"PUBLIC_BASE_URL":        "https://daptar.example/",
		"MAX_CONCURRENT_UPLOADS": "8",
		"SUBMIT_TIMEOUT":         "30s",
		"CORS_ALLOWED_ORIGINS":   "https://a.example, https://b.example,",
	}))

	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "https://daptar.example", cfg.PublicBaseURL)
	assert.Equal(t, 8, cfg.MaxConcurrentUploads)
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AllowAllOrigins())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := FromViper(newViper(map[string]any{
		"GOOGLE_APPLICATION_CREDENTIALS": "",
		"MAX_CONCURRENT_UPLOADS":         0,
	}))

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEET_ID")
	assert.Contains(t, err.Error(), "GOOGLE_CREDENTIALS_JSON")
	assert.Contains(t, err.Error(), "MAX_CONCURRENT_UPLOADS")

	cfg = FromViper(newViper(map[string]any{"STORE_BACKEND": "postgres"}))
	assert.ErrorContains(t, cfg.Validate(), "STORE_BACKEND")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MIN", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.RateLimitPerMin)
	assert.Equal(t, "http://localhost:9090", cfg.PublicBaseURL)
}

func TestLoadWith_OverrideBeatsEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "google")
	t.Setenv("PORT", "9090")

	v := viper.New()
	v.Set("STORE_BACKEND", "sqlite")

	cfg, err := LoadWith(v)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "9090", cfg.Port)
}
