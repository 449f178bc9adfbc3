package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Port           string   `long:"port" env:"PORT" default:"8080" description:"Port the HTTP server listens on"`
	TrustedProxies []string `long:"trusted-proxy" env:"TRUSTED_PROXIES" env-delim:"," description:"IP or CIDR of a reverse proxy whose X-Forwarded-For is trusted (repeatable)"`
}

// ParseTrustedProxies converts TrustedProxies into ranges. A bare IP is a
// single-address range.
func (c HTTPConfig) ParseTrustedProxies() ([]*net.IPNet, error) {
	var ranges []*net.IPNet
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %q is not an IP or CIDR", raw)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			ranges = append(ranges, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, ipRange, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, ipRange)
	}
	return ranges, nil
}

type DBConfig struct {
	Host     string `long:"host" env:"HOST" default:"localhost" description:"PostgreSQL host"`
	Port     string `long:"port" env:"PORT" default:"5432" description:"PostgreSQL port"`
	User     string `long:"user" env:"USER" default:"postgres" description:"PostgreSQL user"`
	Password string `long:"password" env:"PASSWORD" description:"PostgreSQL password"`
	Name     string `long:"name" env:"NAME" default:"fooddelivery" description:"PostgreSQL database name"`
	SslMode  string `long:"sslmode" env:"SSLMODE" default:"disable" description:"PostgreSQL sslmode"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type RedisConfig struct {
	Addr     string `long:"addr" env:"ADDR" description:"Redis address (host:port). Empty uses an in-process cache"`
	Password string `long:"password" env:"PASSWORD" description:"Redis password"`
	DB       int    `long:"db" env:"DB" default:"0" description:"Redis database number"`
}

type CacheConfig struct {
	Size            int           `long:"size" env:"CACHE_SIZE" default:"4096" description:"Entries held by the in-process cache"`
	OrderHistoryTTL time.Duration `long:"order-history-ttl" env:"ORDER_HISTORY_TTL" default:"60s" description:"Lifetime of cached order histories"`
	DetailTTL       time.Duration `long:"detail-ttl" env:"DETAIL_TTL" default:"300s" description:"Lifetime of cached agent and restaurant details"`
}

type RateLimitConfig struct {
	Requests int     `long:"requests" env:"REQ" default:"60" description:"Requests allowed per client and window"`
	Window   Seconds `long:"window" env:"WINDOW" default:"60" description:"Length of a rate limit window, in seconds or as a duration"`
}

// Seconds is a duration flag whose bare integer form counts seconds, so
// RATE_LIMIT_WINDOW=60 and RATE_LIMIT_WINDOW=1m mean the same.
type Seconds time.Duration

func (s *Seconds) UnmarshalFlag(value string) error {
	if n, err := strconv.Atoi(value); err == nil {
		*s = Seconds(time.Duration(n) * time.Second)
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("expected seconds or a duration: %w", err)
	}
	*s = Seconds(d)
	return nil
}

func (s Seconds) MarshalFlag() (string, error) {
	return s.Duration().String(), nil
}

func (s Seconds) Duration() time.Duration {
	return time.Duration(s)
}

type JobsConfig struct {
	LoadAuditSchedule string `long:"load-audit-schedule" env:"LOAD_AUDIT_SCHEDULE" default:"@every 30s" description:"Cron schedule of the agent load audit"`
}

type LogConfig struct {
	Level string `long:"level" env:"LEVEL" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Logging level"`
}

// SlogLevel returns the configured level, or info if it does not parse.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Config is built once in main and handed to the composition root.
type Config struct {
	HTTP      HTTPConfig      `group:"HTTP" namespace:"http" env-namespace:"HTTP"`
	DB        DBConfig        `group:"Database" namespace:"db" env-namespace:"DB"`
	Redis     RedisConfig     `group:"Redis" namespace:"redis" env-namespace:"REDIS"`
	Cache     CacheConfig     `group:"Cache" namespace:"cache"`
	RateLimit RateLimitConfig `group:"Rate limiting" namespace:"rate-limit" env-namespace:"RATE_LIMIT"`
	Jobs      JobsConfig      `group:"Jobs" namespace:"jobs"`
	Log       LogConfig       `group:"Logging" namespace:"log" env-namespace:"LOG"`

	ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"10s" description:"Time allowed for graceful shutdown"`
}

// HTTPAddr is the listen address of the HTTP server.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort("0.0.0.0", c.HTTP.Port)
}

// LoadConfig loads envFile into the environment if it exists, without
// overriding variables already set, and then parses args. Flags take
// precedence over environment variables, which take precedence over
// defaults.
func LoadConfig(envFile string, args []string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return ParseConfig(args)
}

// ParseConfig parses args and the process environment.
func ParseConfig(args []string) (Config, error) {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	if c.Cache.Size <= 0 {
		problems = append(problems, fmt.Errorf("CACHE_SIZE must be positive, got %d", c.Cache.Size))
	}
	if c.RateLimit.Requests <= 0 {
		problems = append(problems, fmt.Errorf("RATE_LIMIT_REQ must be positive, got %d", c.RateLimit.Requests))
	}
	if c.RateLimit.Window.Duration() <= 0 {
		problems = append(problems, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window.Duration()))
	}
	if _, err := c.HTTP.ParseTrustedProxies(); err != nil {
		problems = append(problems, err)
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout))
	}
	return errors.Join(problems...)
}
