// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	Mode           *string
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool

	DarkMode        *bool
	Theme           *string
	ThemesDir       *string
	DefaultLanguage *string
	RulesDir        *string
	Color           *string
	Fallback        *string
	DebounceMs      *int
	CacheTTLMs      *int
}

// NewFlags defines the command-line flags on a new FlagSet named name.
func NewFlags(name string, errorHandling flag.ErrorHandling) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, errorHandling)}
	f.DefineFlags()
	return f
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	fs := f.fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.Mode = fs.String("mode", "ansi", "Output mode: ansi, spans, check, view or watch")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")

	f.DarkMode = fs.Bool("dark", false, "Use the dark palette - Overrides config file")
	f.Theme = fs.String("theme", "", "Theme name (built-in or from the themes directory) - Overrides config file")
	f.ThemesDir = fs.String("themes-dir", "", "Directory of TOML themes - Overrides config file")
	f.DefaultLanguage = fs.String("lang", "", "Language used when the file extension is unknown - Overrides config file")
	f.RulesDir = fs.String("rules-dir", "", "Directory of TOML rule files overriding the built-ins - Overrides config file")
	f.Color = fs.String("color", "", "Color output: truecolor, 256, 16, none or auto - Overrides config file")
	f.Fallback = fs.String("fallback", "", "Checker style for unknown extensions (colon, semicolon, advisory) - Overrides config file")
	f.DebounceMs = fs.Int("debounce", 0, "Watch debounce in milliseconds - Overrides config file")
	f.CacheTTLMs = fs.Int("cache-ttl", -1, "Analysis cache lifetime in milliseconds, 0 disables - Overrides config file")
}

// ParseFlags parses args (without the program name) and returns the
// remaining non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// SetOutput sets where usage and parse errors are printed.
func (f *Flags) SetOutput(w io.Writer) {
	f.fs.SetOutput(w)
}

// Usage prints the flag defaults to the FlagSet's output.
func (f *Flags) Usage() {
	f.fs.Usage()
}

// ApplyOverrides updates the Config struct with values from flags *if* they
// were set, returning the names of the flags applied.
func (f *Flags) ApplyOverrides(cfg *Config) []string {
	var applied []string
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid ("-")
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "dark":
			cfg.Highlight.DarkMode = *f.DarkMode
		case "theme":
			cfg.Highlight.Theme = *f.Theme
		case "themes-dir":
			cfg.Highlight.ThemesDir = *f.ThemesDir
		case "lang":
			if *f.DefaultLanguage != "" {
				cfg.Highlight.DefaultLanguage = *f.DefaultLanguage
			}
		case "rules-dir":
			cfg.Highlight.RulesDir = *f.RulesDir
		case "color":
			if *f.Color != "" {
				cfg.Highlight.Color = *f.Color
			}
		case "fallback":
			if *f.Fallback != "" {
				cfg.Checker.Fallback = *f.Fallback
			}
		case "debounce":
			cfg.Watch.DebounceMs = *f.DebounceMs // validate resets non-positive values
		case "cache-ttl":
			cfg.Watch.CacheTTLMs = *f.CacheTTLMs
		default:
			return
		}
		applied = append(applied, fl.Name)
	})
	return applied
}

// splitCommaList splits a comma-separated list, dropping empty items.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
