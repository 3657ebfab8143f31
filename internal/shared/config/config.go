package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const defaultMaxUploadBytes = 100 << 20 // 100MB

// Config holds application configuration.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	Env            string `env:"ENV" envDefault:"dev"`
	OrgName        string `env:"ORG_NAME" envDefault:"HALEY DYNAMIC SYSTEMS"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
	UploadTempDir  string `env:"UPLOAD_TEMP_DIR"`

	StorageBackend       string `env:"STORAGE_BACKEND" envDefault:"drive"`
	DriveCredentialsJSON string `env:"GOOGLE_APPLICATION_CREDENTIALS_JSON"`
	DriveParentFolderID  string `env:"GOOGLE_DRIVE_FOLDER_ID"`
	AWSRegion            string `env:"AWS_REGION"`
	S3Bucket             string `env:"S3_BUCKET"`
	S3Prefix             string `env:"S3_PREFIX"`
	SSEKMSKeyID          string `env:"SSE_KMS_KEY_ID"`
	LocalStoreDir        string `env:"LOCAL_STORE_DIR" envDefault:"./data"`

	NotifyQueueURL string `env:"NOTIFY_SQS_QUEUE_URL"`

	// Submission rate limiting is off unless SUBMIT_BURST is set above zero.
	SubmitRatePerMinute float64 `env:"SUBMIT_RATE_PER_MINUTE" envDefault:"6"`
	SubmitBurst         int     `env:"SUBMIT_BURST" envDefault:"0"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize fills defaults that struct tags cannot express and canonicalizes
// enumerated values. It is safe to call on a hand-built Config.
func (c *Config) Normalize() {
	c.Env = normalizeEnv(c.Env)
	c.StorageBackend = normalizeBackend(c.StorageBackend)
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = defaultMaxUploadBytes
	}
	if strings.TrimSpace(c.OrgName) == "" {
		c.OrgName = "HALEY DYNAMIC SYSTEMS"
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "local":
		return "local"
	default:
		return "drive"
	}
}
