// Package config builds the server configuration from defaults, an optional
// .env file, environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tasktracker/internal/util"
)

// DefaultSecret is the development signing key. The server warns when it is
// still in use.
const DefaultSecret = "your-secret-key"

// Config holds runtime settings for the API server.
//
// Fields:
//   - Addr: HTTP listen address.
//   - DBDriver / DBDSN: "sqlite3" with a file path (or ":memory:"), or
//     "postgres" with a pgx connection string.
//   - StaticDir: directory with the built browser client; empty means API only.
//   - JWTSecret: HMAC key for session tokens.
//   - TokenTTL: token lifetime; zero issues tokens that never expire.
//   - CORSOrigins: allowed origins; empty allows any origin.
type Config struct {
	Addr        string
	DBDriver    string
	DBDSN       string
	StaticDir   string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":3000"
	c.DBDriver = "sqlite3"
	c.DBDSN = "data/tracker.db"
	c.StaticDir = "web/dist"
	c.JWTSecret = DefaultSecret
	c.TokenTTL = 0
	c.CORSOrigins = nil
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Load applies defaults, the optional env file, the environment and finally
// args (usually os.Args[1:]).
func Load(envFile string, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg.applyEnv()

	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() {
	if port := util.EnvOrDefault("PORT", ""); port != "" {
		c.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	c.Addr = util.EnvOrDefault("TRACKER_ADDR", c.Addr)
	c.DBDriver = util.EnvOrDefault("TRACKER_DB_DRIVER", c.DBDriver)
	c.DBDSN = util.EnvOrDefault("TRACKER_DB_DSN", c.DBDSN)
	c.StaticDir = util.EnvOrDefault("TRACKER_STATIC_DIR", c.StaticDir)
	c.JWTSecret = util.EnvOrDefault("JWT_SECRET", c.JWTSecret)
	c.TokenTTL = util.EnvDuration("TRACKER_TOKEN_TTL", c.TokenTTL)
	if origins := util.EnvOrDefault("TRACKER_CORS_ORIGINS", ""); origins != "" {
		c.CORSOrigins = util.SplitList(origins)
	}
	c.LogLevel = util.EnvOrDefault("TRACKER_LOG_LEVEL", c.LogLevel)
	c.LogFormat = util.EnvOrDefault("TRACKER_LOG_FORMAT", c.LogFormat)
}

func (c *Config) parseFlags(args []string) error {
	flags := flag.NewFlagSet("trackerd", flag.ContinueOnError)

	flags.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	flags.StringVar(&c.DBDriver, "db-driver", c.DBDriver, "database driver: sqlite3 or postgres")
	flags.StringVar(&c.DBDSN, "db", c.DBDSN, "database path or DSN")
	flags.StringVar(&c.StaticDir, "static", c.StaticDir, "directory with the built frontend")
	flags.StringVar(&c.JWTSecret, "secret", c.JWTSecret, "token signing secret")
	flags.DurationVar(&c.TokenTTL, "token-ttl", c.TokenTTL, "token lifetime, 0 for no expiry")
	origins := flags.String("cors", strings.Join(c.CORSOrigins, ","), "comma separated allowed origins")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	flags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")

	if err := flags.Parse(args); err != nil {
		return err
	}
	c.CORSOrigins = util.SplitList(*origins)
	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("token secret must not be empty")
	}
	if c.TokenTTL < 0 {
		return errors.New("token ttl must not be negative")
	}
	return nil
}
