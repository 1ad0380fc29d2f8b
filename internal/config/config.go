package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/spinner"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/keys"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/style"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/table"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/terminal"
)

const (
	AppName        = "forage-ui"
	ConfigFileName = "config.toml"

	// EnvConfig overrides the config file location.
	EnvConfig = "FORAGE_UI_CONFIG"

	MaxPadding      = 8
	MaxViewportSize = 500
	MaxPageSize     = 500
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// TableConfig holds the [table] section.
type TableConfig struct {
	Border          string `toml:"border"`
	Padding         int    `toml:"padding"`
	HeaderSeparator bool   `toml:"header_separator"`
	ViewportSize    int    `toml:"viewport_size"`
	PageSize        int    `toml:"page_size"`
}

// SpinnerConfig holds the [spinner] section.
type SpinnerConfig struct {
	Style      string `toml:"style"`
	IntervalMS int    `toml:"interval_ms"`
}

// Config is the forage-ui configuration file.
type Config struct {
	Interrupt      string        `toml:"interrupt"`
	Color          string        `toml:"color"`
	NonInteractive bool          `toml:"non_interactive"`
	DataDir        string        `toml:"data_dir"`
	Table          TableConfig   `toml:"table"`
	Spinner        SpinnerConfig `toml:"spinner"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
	// Undecoded lists keys present in the file that nothing reads.
	Undecoded []string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Interrupt: "exit",
		Color:     ColorAuto,
		Table: TableConfig{
			Border:          "rounded",
			Padding:         1,
			HeaderSeparator: true,
			ViewportSize:    10,
			PageSize:        10,
		},
		Spinner: SpinnerConfig{
			Style: "dot",
		},
	}
}

// DefaultPath returns $FORAGE_UI_CONFIG, else
// $XDG_CONFIG_HOME/forage-ui/config.toml, else ~/.config/forage-ui/config.toml.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName, ConfigFileName)
}

// Load reads the config at path. An empty path means DefaultPath, and a
// missing default file yields the defaults. An explicitly named file must
// exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config %s", path), err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse config %s", path), err)
	}
	cfg.Path = path

	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(path), cfg.DataDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid config %s", path), err)
	}
	return cfg, nil
}

// Parse decodes a config from r on top of the defaults and validates it.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, errors.ConfigError("failed to parse config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigError("invalid config", err)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return err
	}
	for _, k := range md.Undecoded() {
		c.Undecoded = append(c.Undecoded, k.String())
	}
	return nil
}

// Validate checks enums and ranges.
func (c *Config) Validate() error {
	if _, err := keys.ParsePolicy(c.Interrupt); err != nil {
		return err
	}

	switch strings.ToLower(c.Color) {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (must be auto, always, or never)", c.Color)
	}

	if _, err := table.ParseBorder(c.Table.Border); err != nil {
		return fmt.Errorf("table.border: %w", err)
	}
	if c.Table.Padding < 0 || c.Table.Padding > MaxPadding {
		return fmt.Errorf("table.padding must be between 0 and %d (got %d)", MaxPadding, c.Table.Padding)
	}
	if c.Table.ViewportSize < 1 || c.Table.ViewportSize > MaxViewportSize {
		return fmt.Errorf("table.viewport_size must be between 1 and %d (got %d)", MaxViewportSize, c.Table.ViewportSize)
	}
	if c.Table.PageSize < 1 || c.Table.PageSize > MaxPageSize {
		return fmt.Errorf("table.page_size must be between 1 and %d (got %d)", MaxPageSize, c.Table.PageSize)
	}

	if _, err := style.Spinner(c.Spinner.Style); err != nil {
		return fmt.Errorf("spinner.style: %w", err)
	}
	if c.Spinner.IntervalMS < 0 {
		return fmt.Errorf("spinner.interval_ms must not be negative (got %d)", c.Spinner.IntervalMS)
	}

	return nil
}

// InterruptPolicy returns the parsed interrupt policy.
func (c *Config) InterruptPolicy() keys.InterruptPolicy {
	p, _ := keys.ParsePolicy(c.Interrupt)
	return p
}

// TableStyle returns the drawing style from the [table] section.
func (c *Config) TableStyle() table.Style {
	g, err := table.ParseBorder(c.Table.Border)
	if err != nil {
		g = table.Rounded
	}
	return table.Style{
		Glyphs:          g,
		Padding:         c.Table.Padding,
		HeaderSeparator: c.Table.HeaderSeparator,
	}
}

// SpinnerFrames returns the configured spinner, with interval_ms
// overriding its default cadence.
func (c *Config) SpinnerFrames() spinner.Spinner {
	s, err := style.Spinner(c.Spinner.Style)
	if err != nil {
		s = spinner.Dot
	}
	if c.Spinner.IntervalMS > 0 {
		s.FPS = time.Duration(c.Spinner.IntervalMS) * time.Millisecond
	}
	return s
}

// ShouldColor applies the color mode to the environment predicate.
func (c *Config) ShouldColor(w io.Writer, env terminal.LookupEnv) bool {
	switch strings.ToLower(c.Color) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal.ShouldColor(w, env)
	}
}

// ResolveData resolves a named data set under data_dir. The result never
// escapes data_dir, even through symlinks.
func (c *Config) ResolveData(name string) (string, error) {
	if c.DataDir == "" {
		return "", fmt.Errorf("data_dir is not configured")
	}
	path, err := securejoin.SecureJoin(c.DataDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data set %q: %w", name, err)
	}
	return path, nil
}
