package waypoint

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
)

// Config is the TOML configuration of an App.
type Config struct {
	Router  RouterConfig  `toml:"router"`
	Log     LogConfig     `toml:"log"`
	Catalog CatalogConfig `toml:"catalog"`
	Locale  LocaleConfig  `toml:"locale"`
	Server  ServerConfig  `toml:"server"`
}

// RouterConfig lists the schemes and domains the app accepts links for.
type RouterConfig struct {
	Schemes              []string `toml:"schemes"`                // first entry is used when building URLs
	UniversalLinkDomains []string `toml:"universal_link_domains"` // hosts accepted over http and https
}

// LogConfig controls the application log.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// CatalogConfig locates the product catalog.
type CatalogConfig struct {
	Path string `toml:"path"` // YAML product file; empty uses the built-in sample
}

// LocaleConfig selects the language for screen texts.
type LocaleConfig struct {
	Language string `toml:"language"`
}

// ServerConfig configures the universal-link server.
type ServerConfig struct {
	Address string   `toml:"address"`
	AppIDs  []string `toml:"app_ids"` // team.bundle ids advertised in apple-app-site-association
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Router: RouterConfig{
			Schemes:              []string{constants.DefaultScheme},
			UniversalLinkDomains: []string{constants.DefaultDomain},
		},
		Log:    LogConfig{Level: constants.DefaultLogLevel},
		Locale: LocaleConfig{Language: constants.DefaultLanguage},
		Server: ServerConfig{Address: constants.DefaultServerAddress},
	}
}

// LoadConfig decodes the TOML file at path over DefaultConfig.
// An empty path falls back to WAYPOINT_CONFIG; with neither set the defaults
// are returned. WAYPOINT_LOG_LEVEL overrides the file's log level.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(constants.ConfigPathEnvVar)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, NewInfrastructureError("load_config", err)
		}
		if cfg, err = ParseConfig(data); err != nil {
			return cfg, err
		}
	}

	if level := os.Getenv(constants.LogLevelEnvVar); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// ParseConfig decodes TOML bytes over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), NewInfrastructureError("parse_config", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		GetLogger().Warn("unknown config keys ignored", "keys", fmt.Sprint(undecoded))
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), NewInfrastructureError("parse_config", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Router.Schemes = trimAll(c.Router.Schemes)
	c.Router.UniversalLinkDomains = trimAll(c.Router.UniversalLinkDomains)
	c.Locale.Language = strings.TrimSpace(c.Locale.Language)
	if c.Locale.Language == "" {
		c.Locale.Language = constants.DefaultLanguage
	}
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	if len(c.Router.Schemes) == 0 {
		return errors.New("router.schemes: at least one scheme is required")
	}
	for _, s := range c.Router.Schemes {
		if strings.Contains(s, ":") || strings.Contains(s, "/") {
			return fmt.Errorf("router.schemes: %q: give the scheme name without \"://\"", s)
		}
	}
	for _, d := range c.Router.UniversalLinkDomains {
		if strings.ContainsAny(d, "/:") {
			return fmt.Errorf("router.universal_link_domains: %q: give a bare host name", d)
		}
	}
	if _, err := language.Parse(c.Locale.Language); err != nil {
		return fmt.Errorf("locale.language: %w", err)
	}
	return nil
}

// WriteDefaultConfig writes DefaultConfig as TOML to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(DefaultConfig()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
