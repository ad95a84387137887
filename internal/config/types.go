package config

import (
	"net"
	"net/url"
	"strconv"
)

// GeminiConfig holds Gemini model settings.
type GeminiConfig struct {
	APIKeys         []string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	TimeoutSeconds  int
}

// PrimaryKey returns the first configured API key.
func (g GeminiConfig) PrimaryKey() string {
	if len(g.APIKeys) == 0 {
		return ""
	}
	return g.APIKeys[0]
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string
	LogDir     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host         string
	Port         int
	HTTP2Enabled bool
}

// HTTPAuthConfig holds API key auth settings.
type HTTPAuthConfig struct {
	APIKey string
}

// HTTPRateLimitConfig holds request limit settings.
type HTTPRateLimitConfig struct {
	RequestsPerMinute int
	CacheSize         int
	CacheTTLSeconds   int
}

// DatabaseConfig holds DB connection settings.
type DatabaseConfig struct {
	Host                   string
	Port                   int
	Name                   string
	User                   string
	Password               string
	MinPool                int
	MaxPool                int
	ConnMaxLifetimeMinutes int
	ConnMaxIdleTimeMinutes int
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	host := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	u := &url.URL{
		Scheme: "postgresql",
		Host:   host,
		Path:   "/" + d.Name,
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	} else {
		u.User = url.UserPassword(d.User, d.Password)
	}
	return u.String()
}

// Config is the whole application configuration.
type Config struct {
	Gemini        GeminiConfig
	Logging       LoggingConfig
	HTTP          HTTPConfig
	HTTPAuth      HTTPAuthConfig
	HTTPRateLimit HTTPRateLimitConfig
	Database      DatabaseConfig
}
