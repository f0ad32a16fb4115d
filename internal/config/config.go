// Package config loads the console configuration from environment variables.
// Every setting has a default, so an empty environment yields a working
// development setup; Load validates the result and reports all problems at
// once.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Security SecurityConfig
	Rate     RateLimitConfig
	Session  SessionConfig
	Grid     GridConfig
	Import   ImportConfig
	Data     DataConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, import drain included (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// CORSOrigins lists the origins allowed to call the JSON API (default: none)
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// RateLimitConfig holds per-IP rate limits.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// ImportLimit is requests per minute for the import endpoint (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SessionConfig holds browser session settings. Each session owns the
// filter, page and dialog state of every tab.
type SessionConfig struct {
	// CookieName is the session cookie name (default: schooladmin_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"schooladmin_session"`

	// TTL is how long an idle session is kept (default: 2h)
	TTL time.Duration `env:"SESSION_TTL" default:"2h"`

	// SweepInterval is how often expired sessions are removed (default: 5m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"5m"`

	// SecureCookie sets the Secure flag; enable behind HTTPS (default: false)
	SecureCookie bool `env:"SESSION_SECURE_COOKIE" default:"false"`
}

// GridConfig holds table display settings.
type GridConfig struct {
	// PageSize is the initial number of rows per page (default: 10)
	PageSize int `env:"GRID_PAGE_SIZE" default:"10"`

	// PageSizes are the choices offered in the page-size selector (default: 5,10,20,50)
	PageSizes []int `env:"GRID_PAGE_SIZES" default:"5,10,20,50"`

	// DeletePolicy is "optimistic" (close the dialog at once) or "confirmed"
	// (close it after the store succeeds) (default: optimistic)
	DeletePolicy string `env:"GRID_DELETE_POLICY" default:"optimistic"`
}

// ImportConfig holds spreadsheet import settings.
type ImportConfig struct {
	// MaxFileSize is the maximum accepted file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"10485760"`

	// MaxConcurrent is the number of imports processed at once (default: 4)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long an import waits for a free slot (default: 10s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"10s"`

	// Timeout bounds a single import (default: 2m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"2m"`
}

// DataConfig holds dataset and export settings.
type DataConfig struct {
	// FixturesPath is a YAML dataset to seed the stores; empty uses the
	// built-in sample data
	FixturesPath string `env:"DATA_FIXTURES_PATH" envAlt:"SCHOOLADMIN_FIXTURES"`

	// ExportFormat is the export file type: xlsx or csv (default: xlsx)
	ExportFormat string `env:"EXPORT_FORMAT" default:"xlsx"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
