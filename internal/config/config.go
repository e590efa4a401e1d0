// Package config loads the server configuration from defaults, an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mahdiarghyani/portfolio/internal/content"
)

// EnvPrefix namespaces environment overrides: PORTFOLIO_PDF__TIMEOUT=45s
// sets pdf.timeout.
const EnvPrefix = "PORTFOLIO_"

// DefaultPath is the config file read when none is given.
const DefaultPath = "portfolio.yml"

type Config struct {
	Server    Server    `koanf:"server" yaml:"server"`
	Logging   Logging   `koanf:"logging" yaml:"logging"`
	Blog      Blog      `koanf:"blog" yaml:"blog"`
	PDF       PDF       `koanf:"pdf" yaml:"pdf"`
	Analytics Analytics `koanf:"analytics" yaml:"analytics"`
	SMTP      SMTP      `koanf:"smtp" yaml:"smtp"`
	Admin     Admin     `koanf:"admin" yaml:"admin"`
	Metrics   Metrics   `koanf:"metrics" yaml:"metrics"`
}

type Server struct {
	Host string `koanf:"host" yaml:"host"`
	Port int    `koanf:"port" yaml:"port"`
	// SiteURL is the public origin used in feeds and absolute links.
	SiteURL       string        `koanf:"site_url" yaml:"site_url"`
	SiteName      string        `koanf:"site_name" yaml:"site_name"`
	DefaultLocale string        `koanf:"default_locale" yaml:"default_locale"`
	Mode          string        `koanf:"mode" yaml:"mode"`
	StaticDir     string        `koanf:"static_dir" yaml:"static_dir"`
	ShutdownGrace time.Duration `koanf:"shutdown_grace" yaml:"shutdown_grace"`
}

type Logging struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

type Blog struct {
	ContentDir string `koanf:"content_dir" yaml:"content_dir"`
	Watch      bool   `koanf:"watch" yaml:"watch"`
}

type PDF struct {
	Enabled       bool          `koanf:"enabled" yaml:"enabled"`
	ChromePath    string        `koanf:"chrome_path" yaml:"chrome_path"`
	Timeout       time.Duration `koanf:"timeout" yaml:"timeout"`
	MaxConcurrent int           `koanf:"max_concurrent" yaml:"max_concurrent"`
	// BaseURL is the origin the headless browser loads; empty derives it
	// from the incoming request.
	BaseURL string `koanf:"base_url" yaml:"base_url"`
}

type Analytics struct {
	Enabled         bool          `koanf:"enabled" yaml:"enabled"`
	DBPath          string        `koanf:"db_path" yaml:"db_path"`
	Retention       time.Duration `koanf:"retention" yaml:"retention"`
	CleanupInterval time.Duration `koanf:"cleanup_interval" yaml:"cleanup_interval"`
	Salt            string        `koanf:"salt" yaml:"salt"`
}

type SMTP struct {
	Host string `koanf:"host" yaml:"host"`
	Port int    `koanf:"port" yaml:"port"`
	User string `koanf:"user" yaml:"user"`
	Pass string `koanf:"pass" yaml:"-"`
	To   string `koanf:"to" yaml:"to"`
}

// Configured reports whether outgoing mail can be sent.
func (s SMTP) Configured() bool {
	return s.Host != "" && s.User != "" && s.Pass != "" && s.To != ""
}

type Admin struct {
	Username string `koanf:"username" yaml:"username"`
	Password string `koanf:"password" yaml:"-"`
}

type Metrics struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Host:          "",
			Port:          8080,
			SiteURL:       "http://localhost:8080",
			SiteName:      "Mahdi Arghyani",
			DefaultLocale: string(content.DefaultLocale),
			Mode:          "release",
			StaticDir:     "static",
			ShutdownGrace: 10 * time.Second,
		},
		Logging: Logging{Level: "info", Format: "text"},
		Blog:    Blog{ContentDir: "content"},
		PDF: PDF{
			Enabled:       true,
			Timeout:       30 * time.Second,
			MaxConcurrent: 2,
		},
		Analytics: Analytics{
			Enabled:         true,
			DBPath:          "portfolio.db",
			Retention:       365 * 24 * time.Hour,
			CleanupInterval: 24 * time.Hour,
		},
		SMTP:    SMTP{Port: 587},
		Admin:   Admin{Username: "admin"},
		Metrics: Metrics{Enabled: true, Path: "/metrics"},
	}
}

// legacyEnv maps the flat variables of earlier deployments onto keys.
var legacyEnv = map[string]string{
	"PORT":           "server.port",
	"SMTP_HOST":      "smtp.host",
	"SMTP_PORT":      "smtp.port",
	"SMTP_USER":      "smtp.user",
	"SMTP_PASS":      "smtp.pass",
	"TO_EMAIL":       "smtp.to",
	"ADMIN_USERNAME": "admin.username",
	"ADMIN_PASSWORD": "admin.password",
	"GIN_MODE":       "server.mode",
}

// Load reads defaults, then the YAML file at path if it exists, then the
// legacy variables, then PORTFOLIO_* variables. An empty path means
// DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey turns PORTFOLIO_SERVER__SITE_URL into server.site_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
	validModes   = map[string]bool{"debug": true, "release": true, "test": true}
)

// Validate checks that the configuration contains valid values. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port %d out of range", c.Server.Port)
	}
	if _, err := content.ParseLocale(c.Server.DefaultLocale); err != nil {
		add("server.default_locale: %w", err)
	}
	if u, err := url.Parse(c.Server.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("server.site_url %q must be an absolute URL", c.Server.SiteURL)
	}
	if !validModes[c.Server.Mode] {
		add("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}
	if c.Server.ShutdownGrace < 0 {
		add("server.shutdown_grace must be non-negative")
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		add("invalid logging.level %q: must be one of debug, info, warn, error", c.Logging.Level)
	}
	if !validFormats[c.Logging.Format] {
		add("invalid logging.format %q: must be text or json", c.Logging.Format)
	}
	if c.Blog.ContentDir == "" {
		add("blog.content_dir is required")
	}
	if c.PDF.Timeout < 0 {
		add("pdf.timeout must be non-negative")
	}
	if c.PDF.MaxConcurrent < 1 {
		add("pdf.max_concurrent must be at least 1")
	}
	if c.Analytics.Enabled && c.Analytics.DBPath == "" {
		add("analytics.db_path is required when analytics is enabled")
	}
	if c.Analytics.Retention < 0 || c.Analytics.CleanupInterval < 0 {
		add("analytics durations must be non-negative")
	}
	if c.SMTP.Port < 0 || c.SMTP.Port > 65535 {
		add("smtp.port %d out of range", c.SMTP.Port)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		add("metrics.path %q must start with /", c.Metrics.Path)
	}
	return errors.Join(errs...)
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// PDFBaseURL is the origin the PDF renderer loads. In release mode an
// unset pdf.base_url falls back to server.site_url so the request Host
// header never chooses what the browser opens; other modes return "" and
// derive it per request.
func (c *Config) PDFBaseURL() string {
	if c.PDF.BaseURL != "" {
		return c.PDF.BaseURL
	}
	if c.Server.Mode == "release" {
		return c.Server.SiteURL
	}
	return ""
}

// SlogLevel parses logging.level, defaulting to info.
func (l Logging) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
