// Package config loads service settings from defaults, an optional YAML file,
// PROVENANCE_* environment variables and bound command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/PageDAO/PageProvenanceService/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. PROVENANCE_SERVER_ADDR.
const EnvPrefix = "PROVENANCE"

// DefaultFileName is looked up in the search paths when no file is given.
const DefaultFileName = "provenance"

// Config is the resolved service configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Render  RenderConfig   `mapstructure:"render"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Catalog CatalogConfig  `mapstructure:"catalog"`
	Logo    LogoConfig     `mapstructure:"logo"`
	Service ServiceConfig  `mapstructure:"service"`
	Log     logging.Config `mapstructure:"log"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

// RenderConfig selects the default format. PDFFont names a TrueType file
// used instead of the embedded faces, e.g. for CJK records.
type RenderConfig struct {
	Default       string `mapstructure:"default"`
	StrictCatalog bool   `mapstructure:"strict_catalog"`
	PDFFont       string `mapstructure:"pdf_font"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// CatalogConfig points at a replacement catalog. Empty uses the embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LogoConfig points at a replacement logo. Empty uses the embedded one.
type LogoConfig struct {
	Path string `mapstructure:"path"`
}

// ServiceConfig names the service. Footer, when set, is a template for the
// artifact footer statement.
type ServiceConfig struct {
	Title  string `mapstructure:"title"`
	Footer string `mapstructure:"footer"`
}

var defaults = map[string]any{
	"server.addr":           ":8080",
	"server.shutdown_grace": "10s",
	"render.default":        "pdf",
	"render.strict_catalog": false,
	"render.pdf_font":       "",
	"theme.name":            "page",
	"theme.variant":         "",
	"catalog.path":          "",
	"logo.path":             "",
	"service.title":         "Page Provenance Service",
	"service.footer":        "",
	"log.level":             "info",
	"log.format":            "console",
}

// Option customises loading.
type Option func(*loader)

type loader struct {
	file        string
	searchPaths []string
	flags       map[string]*pflag.Flag
	envLookup   bool
}

// WithFile reads settings from path. A missing file is an error.
func WithFile(path string) Option {
	return func(l *loader) {
		l.file = strings.TrimSpace(path)
	}
}

// WithSearchPaths sets where provenance.yaml is looked for when no file is
// given. A missing file there is not an error.
func WithSearchPaths(paths ...string) Option {
	return func(l *loader) {
		l.searchPaths = paths
	}
}

// WithFlag binds a command-line flag to key. The flag wins over file and
// environment values only when it was set explicitly.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(l *loader) {
		if flag == nil {
			return
		}
		if l.flags == nil {
			l.flags = map[string]*pflag.Flag{}
		}
		l.flags[key] = flag
	}
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(l *loader) {
		l.envLookup = false
	}
}

// Load resolves the configuration.
func Load(options ...Option) (Config, error) {
	l := loader{searchPaths: []string{"."}, envLookup: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&l)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if l.envLookup {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	for key, flag := range l.flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, fmt.Errorf("config: bind flag %s: %w", key, err)
		}
	}

	if l.file != "" {
		v.SetConfigFile(l.file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", l.file, err)
		}
	} else if len(l.searchPaths) > 0 {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		for _, path := range l.searchPaths {
			v.AddConfigPath(path)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read %s.yaml: %w", DefaultFileName, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.ShutdownGrace < 0 {
		return errors.New("config: server.shutdown_grace must not be negative")
	}
	if strings.TrimSpace(c.Render.Default) == "" {
		return errors.New("config: render.default is required")
	}
	return nil
}
