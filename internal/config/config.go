package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendGoogle = "google"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port    string
	GinMode string

	SheetID         string
	CredentialsFile string
	CredentialsJSON string
	DriveFolderID   string

	StoreBackend   string
	SQLitePath     string
	LocalUploadDir string
	PublicBaseURL  string
	ScratchDir     string

	MaxConcurrentUploads int
	MaxUploadMB          int64
	SubmitTimeout        time.Duration
	QuestionCacheTTL     time.Duration
	RateLimitPerMin      int
	CORSAllowedOrigins   []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith is Load over a caller-owned viper, so CLI flags bound to v take
// precedence over the environment.
func LoadWith(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Load(): failed to read .env: %v", err)
	}

	v.AutomaticEnv()
	SetDefaults(v)

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "credentials.json")
	v.SetDefault("STORE_BACKEND", BackendGoogle)
	v.SetDefault("SQLITE_PATH", "data/daptar.db")
	v.SetDefault("LOCAL_UPLOAD_DIR", "data/uploads")
	v.SetDefault("SCRATCH_DIR", os.TempDir())
	v.SetDefault("MAX_CONCURRENT_UPLOADS", 4)
	v.SetDefault("MAX_UPLOAD_MB", 32)
	v.SetDefault("SUBMIT_TIMEOUT", "2m")
	v.SetDefault("QUESTION_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT_PER_MIN", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:                 v.GetString("PORT"),
		GinMode:              v.GetString("GIN_MODE"),
		SheetID:              v.GetString("GOOGLE_SHEET_ID"),
		CredentialsFile:      v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		CredentialsJSON:      v.GetString("GOOGLE_CREDENTIALS_JSON"),
		DriveFolderID:        v.GetString("GOOGLE_DRIVE_FOLDER_ID"),
		StoreBackend:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		LocalUploadDir:       v.GetString("LOCAL_UPLOAD_DIR"),
		PublicBaseURL:        strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		ScratchDir:           v.GetString("SCRATCH_DIR"),
		MaxConcurrentUploads: v.GetInt("MAX_CONCURRENT_UPLOADS"),
		MaxUploadMB:          v.GetInt64("MAX_UPLOAD_MB"),
		SubmitTimeout:        v.GetDuration("SUBMIT_TIMEOUT"),
		QuestionCacheTTL:     v.GetDuration("QUESTION_CACHE_TTL"),
		RateLimitPerMin:      v.GetInt("RATE_LIMIT_PER_MIN"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	return cfg
}

func (c *Config) Validate() error {
	var problems []string
	switch c.StoreBackend {
	case BackendGoogle:
		if c.SheetID == "" {
			problems = append(problems, "GOOGLE_SHEET_ID is required for the google backend")
		}
		if c.CredentialsJSON == "" && c.CredentialsFile == "" {
			problems = append(problems, "GOOGLE_CREDENTIALS_JSON or GOOGLE_APPLICATION_CREDENTIALS is required")
		}
	case BackendSQLite:
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND must be %q or %q, got %q", BackendGoogle, BackendSQLite, c.StoreBackend))
	}
	if c.SQLitePath == "" {
		problems = append(problems, "SQLITE_PATH is required")
	}
	if c.MaxConcurrentUploads < 1 {
		problems = append(problems, "MAX_CONCURRENT_UPLOADS must be at least 1")
	}
	if c.MaxUploadMB < 1 {
		problems = append(problems, "MAX_UPLOAD_MB must be at least 1")
	}
	if c.SubmitTimeout <= 0 {
		problems = append(problems, "SUBMIT_TIMEOUT must be positive")
	}
	if c.RateLimitPerMin < 0 {
		problems = append(problems, "RATE_LIMIT_PER_MIN must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// FilesURL is where the local uploader's files are served.
func (c *Config) FilesURL() string {
	return c.PublicBaseURL + "/files"
}

func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.CORSAllowedOrigins) == 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
