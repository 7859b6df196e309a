// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidelex/internal/checker"
	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/render"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Highlight HighlightConfig `toml:"highlight"`
	Checker   CheckerConfig   `toml:"checker"`
	Watch     WatchConfig     `toml:"watch"`
}

// HighlightConfig selects rule sets and the presentation theme.
type HighlightConfig struct {
	DarkMode        bool   `toml:"dark_mode"`
	Theme           string `toml:"theme"`      // Theme name; empty picks the built-in for DarkMode
	ThemesDir       string `toml:"themes_dir"` // Directory of user *.toml themes
	DefaultLanguage string `toml:"default_language"`
	RulesDir        string `toml:"rules_dir"` // Directory overriding built-in rule files
	Color           string `toml:"color"`     // truecolor, 256, 16, none or auto
}

// CheckerConfig maps file extensions to checking styles.
type CheckerConfig struct {
	Fallback string            `toml:"fallback"`
	Styles   map[string]string `toml:"styles"` // ".ext" -> "colon" | "semicolon" | "advisory"
}

// WatchConfig controls re-analysis on file changes.
type WatchConfig struct {
	DebounceMs int `toml:"debounce_ms"`
	CacheTTLMs int `toml:"cache_ttl_ms"` // 0 disables the analysis cache
}

// Debounce returns the debounce window as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// CacheTTL returns how long analysis results are reused.
func (w WatchConfig) CacheTTL() time.Duration {
	return time.Duration(w.CacheTTLMs) * time.Millisecond
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	themesDir := ""
	if configDir, err := os.UserConfigDir(); err == nil {
		themesDir = filepath.Join(configDir, ConfigDirName, ThemesDirName)
	}
	return &Config{
		Logger: logger.Config{
			LogLevel: "warn", // Keep stderr quiet next to rendered output
		},
		Highlight: HighlightConfig{
			ThemesDir:       themesDir,
			DefaultLanguage: DefaultLanguage,
			Color:           DefaultColor,
		},
		Checker: CheckerConfig{
			Fallback: DefaultCheckerFallback,
		},
		Watch: WatchConfig{
			DebounceMs: int(DefaultDebounce / time.Millisecond),
			CacheTTLMs: int(DefaultCacheTTL / time.Millisecond),
		},
	}
}

// DefaultConfigPath returns ~/.config/tidelex/config.toml (or the platform
// equivalent), or "" when no user config dir exists.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// It returns any keys the file set that Config does not know.
func loadFromFile(cfg *Config, filePath string) ([]string, error) {
	_, err := os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// validate checks config values and resets invalid ones to defaults.
// It returns a description of every value it reset.
func (c *Config) validate() []string {
	defaults := NewDefaultConfig()
	var fixed []string

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if strings.TrimSpace(c.Highlight.DefaultLanguage) == "" {
		c.Highlight.DefaultLanguage = defaults.Highlight.DefaultLanguage
	}
	if c.Watch.DebounceMs <= 0 {
		fixed = append(fixed, fmt.Sprintf("watch.debounce_ms %d not positive", c.Watch.DebounceMs))
		c.Watch.DebounceMs = defaults.Watch.DebounceMs
	}
	if c.Watch.CacheTTLMs < 0 {
		fixed = append(fixed, fmt.Sprintf("watch.cache_ttl_ms %d negative", c.Watch.CacheTTLMs))
		c.Watch.CacheTTLMs = defaults.Watch.CacheTTLMs
	}
	if _, err := render.ParseProfile(c.Highlight.Color, io.Discard); err != nil {
		fixed = append(fixed, fmt.Sprintf("highlight.color: %v", err))
		c.Highlight.Color = defaults.Highlight.Color
	}

	if _, err := checker.ParseStyle(c.Checker.Fallback); err != nil {
		fixed = append(fixed, fmt.Sprintf("checker.fallback: %v", err))
		c.Checker.Fallback = defaults.Checker.Fallback
	}
	for ext, name := range c.Checker.Styles {
		if _, err := checker.ParseStyle(name); err != nil {
			fixed = append(fixed, fmt.Sprintf("checker.styles.%s: %v", ext, err))
			delete(c.Checker.Styles, ext)
		}
	}
	return fixed
}

// CheckerOptions turns the validated checker section into checker options.
func (c *CheckerConfig) CheckerOptions() []checker.Option {
	var opts []checker.Option
	if style, err := checker.ParseStyle(c.Fallback); err == nil {
		opts = append(opts, checker.WithFallback(style))
	}
	if len(c.Styles) > 0 {
		styles := make(map[string]checker.Style, len(c.Styles))
		for ext, name := range c.Styles {
			if style, err := checker.ParseStyle(name); err == nil {
				styles[ext] = style
			}
		}
		opts = append(opts, checker.WithStyles(styles))
	}
	return opts
}

// Load merges defaults, the config file and flag overrides, then validates.
// An empty configFilePath uses DefaultConfigPath. Problems found while
// loading are logged once the logger is initialized; see Notes.
func Load(configFilePath string, flags *Flags) (*Config, *Notes, error) {
	cfg := NewDefaultConfig()
	notes := &Notes{}

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}
	if effectivePath != "" {
		unknown, err := loadFromFile(cfg, effectivePath)
		if err != nil {
			return cfg, notes, err
		}
		notes.Path = effectivePath
		notes.UnknownKeys = unknown
	}

	if flags != nil {
		notes.Overrides = flags.ApplyOverrides(cfg)
	}
	notes.Fixed = cfg.validate()
	return cfg, notes, nil
}

// Notes records what Load did, for logging after logger.Init.
type Notes struct {
	Path        string
	UnknownKeys []string
	Overrides   []string
	Fixed       []string
}

// Log writes the notes through the logger.
func (n *Notes) Log() {
	if n == nil {
		return
	}
	if n.Path != "" {
		logger.DebugTagf("config", "Configuration file: %s", n.Path)
	}
	if len(n.UnknownKeys) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", n.Path, n.UnknownKeys)
	}
	for _, name := range n.Overrides {
		logger.DebugTagf("config", "Applied flag override: %s", name)
	}
	for _, msg := range n.Fixed {
		logger.Warnf("Config: reset invalid value (%s)", msg)
	}
}
