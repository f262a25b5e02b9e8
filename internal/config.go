package internal

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // timezone names resolve without a system zoneinfo

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/folio/internal/client"
	"github.com/starford/folio/internal/logger"
	"github.com/starford/folio/internal/query"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Content sources.
const (
	SourceSeed  = "seed"
	SourceVault = "vault"
)

// Query backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendHTTP   = "http"
)

// APIURLEnv overrides the default base URL of the remote content API.
const APIURLEnv = "FOLIO_API_URL"

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Query   QueryConfig       `yaml:"query"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	API     APIConfig         `yaml:"api"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := c.Query.Validate(); err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if c.Query.Backend == BackendSQLite {
		if err := c.SQLite.Validate(); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
	}
	if c.Query.Backend == BackendHTTP {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel  string     `yaml:"log_level"`
	LogFormat string     `yaml:"log_format"`
	LogFile   string     `yaml:"log_file"`
	HTTP      HTTPConfig `yaml:"http"`

	// SiteURL is the public base URL used for absolute links in the feed.
	SiteURL string `yaml:"site_url"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.By(func(any) error {
			_, err := logger.ParseLevel(c.LogLevel)
			return err
		})),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.SiteURL, is.RequestURL),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// LoggerOptions maps the logging fields onto logger.Options.
func (c *ApplicationConfig) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, File: c.LogFile}
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig selects where the catalog comes from.
type ContentConfig struct {
	Source    string `yaml:"source"`
	VaultPath string `yaml:"vault_path"`

	// Watch reloads the vault when its files change.
	Watch bool `yaml:"watch"`

	// Timezone is the IANA zone archive months are computed in.
	Timezone string `yaml:"timezone"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required, validation.In(SourceSeed, SourceVault)),
		validation.Field(&c.VaultPath, validation.When(c.Source == SourceVault, validation.Required)),
		validation.Field(&c.Timezone, validation.By(func(any) error {
			_, err := c.Location()
			return err
		})),
	)
}

// Location resolves Timezone; empty means the process local zone.
func (c *ContentConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// QueryConfig selects the repository implementation and its latency profile.
type QueryConfig struct {
	Backend string `yaml:"backend"`
	Latency string `yaml:"latency"`
}

// Validate validates the query configuration.
func (c *QueryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendMemory, BackendSQLite, BackendHTTP)),
		validation.Field(&c.Latency, validation.In(query.LatencyMock, query.LatencyNone)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// APIConfig points the http backend at a remote content API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the API configuration.
func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.RequestURL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how the HTTP API is protected:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
//
// SessionPath is where the http backend keeps its client token between runs.
// Empty keeps the token in memory only.
type AuthConfig struct {
	Mode        string `yaml:"mode"`
	Token       string `yaml:"token"`
	SessionPath string `yaml:"session_path"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values: the
// built-in sample content served from memory with mock latency.
func NewDefaultConfig() *Config {
	baseURL := os.Getenv(APIURLEnv)
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}
	return &Config{
		App: ApplicationConfig{
			LogLevel:  "info",
			LogFormat: "text",
			HTTP: HTTPConfig{
				Port: 8080,
			},
			SiteURL: "http://localhost:8080",
		},
		Content: ContentConfig{
			Source:    SourceSeed,
			VaultPath: "./content",
		},
		Query: QueryConfig{
			Backend: BackendMemory,
			Latency: query.LatencyMock,
		},
		SQLite: SQLiteConfig{
			Path: "./folio.db",
		},
		API: APIConfig{
			BaseURL: baseURL,
			Timeout: client.DefaultTimeout,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
