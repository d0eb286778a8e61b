package config

import (
	"errors"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

var (
	ErrSupabaseURLNotSet     = errors.New("SUPABASE_URL not set in environment")
	ErrSupabaseAnonKeyNotSet = errors.New("SUPABASE_ANON_KEY not set in environment")
)

type Config struct {
	// Supabase project (missing values are reported per call, not at load time)
	SupabaseURL           string `envconfig:"SUPABASE_URL"`
	SupabaseAnonKey       string `envconfig:"SUPABASE_ANON_KEY"`
	SupabaseAnonKeySecret string `envconfig:"SUPABASE_ANON_KEY_SECRET"`
	JWTSecret             string `envconfig:"SUPABASE_JWT_SECRET"`
	AuthRedirectURL       string `envconfig:"SUPABASE_AUTH_REDIRECT_URL"`

	// Supabase Storage through its S3-compatible API (avatar uploads)
	S3URL       string `envconfig:"SUPABASE_S3_URL"`
	S3Bucket    string `envconfig:"SUPABASE_S3_BUCKET" default:"avatars"`
	S3Region    string `envconfig:"SUPABASE_S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"SUPABASE_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"SUPABASE_S3_SECRET_KEY"`

	// Bridge process
	Environment    string `envconfig:"ENV" default:"development"`
	BridgeAddr     string `envconfig:"BRIDGE_ADDR" default:"127.0.0.1:8080"`
	BridgeToken    string `envconfig:"BRIDGE_TOKEN"`
	AllowedOrigins string `envconfig:"BRIDGE_ALLOWED_ORIGINS" default:"tauri://localhost,http://localhost:1420"`

	// Progress events
	GCPProjectID        string `envconfig:"GCP_PROJECT_ID"`
	PubSubEmulatorHost  string `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubProgressTopic string `envconfig:"PUBSUB_PROGRESS_TOPIC"`

	// Catalog migration (cmd/migrate, postgres sink)
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING"`

	// Code runner interpreters
	PythonBin string `envconfig:"PYTHON_BIN" default:"python3"`
	NodeBin   string `envconfig:"NODE_BIN" default:"node"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SupabaseCredentials returns the base URL and anon key, or the "not set" error for
// whichever is missing.
func (c *Config) SupabaseCredentials() (string, string, error) {
	url := strings.TrimRight(strings.TrimSpace(c.SupabaseURL), "/")
	if url == "" {
		return "", "", ErrSupabaseURLNotSet
	}
	key := strings.TrimSpace(c.SupabaseAnonKey)
	if key == "" {
		return "", "", ErrSupabaseAnonKeyNotSet
	}
	return url, key, nil
}

// StorageEnabled reports whether avatar uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.S3URL != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// EventsEnabled reports whether progress events should be published.
func (c *Config) EventsEnabled() bool {
	return c.PubSubProgressTopic != "" && c.GCPProjectID != ""
}

// Origins splits BRIDGE_ALLOWED_ORIGINS.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
