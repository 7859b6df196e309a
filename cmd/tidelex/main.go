// cmd/tidelex/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"

	"github.com/bethropolis/tidelex/internal/app"
	"github.com/bethropolis/tidelex/internal/checker"
	"github.com/bethropolis/tidelex/internal/config"
	"github.com/bethropolis/tidelex/internal/highlighter"
	"github.com/bethropolis/tidelex/internal/highlighter/lang"
	"github.com/bethropolis/tidelex/internal/logger"
	"github.com/bethropolis/tidelex/internal/render"
	"github.com/bethropolis/tidelex/internal/theme"
)

const version = "0.1.0"

// Exit codes
const (
	exitOK       = 0
	exitBlocking = 1 // check mode found syntax errors
	exitUsage    = 2
	exitFailure  = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(config.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	rest, err := flags.ParseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}
	if *flags.Version {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, version)
		return exitOK
	}
	if len(rest) != 1 {
		fmt.Fprintf(stderr, "usage: %s [flags] FILE\n", config.AppName)
		flags.Usage()
		return exitUsage
	}
	filePath := rest[0]
	mode := *flags.Mode
	interactive := mode == "view" || mode == "watch"

	// --- Configuration ---
	cfg, notes, err := config.Load(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return exitFailure
	}

	// --- Logger Initialization ---
	// Logging to stderr would draw over the viewer.
	if interactive && (cfg.Logger.LogFilePath == "" || cfg.Logger.LogFilePath == "-") {
		cfg.Logger.LogFilePath = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	logOut, closeLog, err := logger.Open(cfg.Logger)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}
	defer closeLog()
	if logOut == os.Stderr {
		logOut = stderr
	}
	logger.SetFilterDebug(*flags.DebugLog)
	logger.Init(cfg.Logger, logOut)
	notes.Log()
	logger.Debugf("Starting %s %s in %s mode for '%s'", config.AppName, version, mode, filePath)

	// --- Languages, theme, checker ---
	highlighter.RegisterLanguages()
	lang.SetRulesDir(cfg.Highlight.RulesDir)

	themes, err := theme.NewManager(cfg.Highlight.ThemesDir)
	if err != nil {
		logger.Warnf("Loading themes: %v", err)
	}
	activeTheme, err := themes.Select(cfg.Highlight.Theme, cfg.Highlight.DarkMode)
	if err != nil {
		fmt.Fprintf(stderr, "%v (available: %v)\n", err, themes.ListThemes())
		return exitUsage
	}

	analyzer := app.NewAnalyzer(checker.New(cfg.Checker.CheckerOptions()...), cfg.Highlight.DefaultLanguage)

	switch mode {
	case "ansi", "spans", "check":
		profile, err := render.ParseProfile(cfg.Highlight.Color, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return exitUsage
		}
		return runBatch(analyzer, activeTheme, profile, mode, filePath, stdout, stderr)
	case "view", "watch":
		if mode == "watch" {
			analyzer.EnableCache(cfg.Watch.CacheTTL())
		}
		opts := app.Options{
			Path:           filePath,
			Watch:          mode == "watch",
			Debounce:       cfg.Watch.Debounce(),
			Themes:         loadedThemes(themes),
			MessageTimeout: config.MessageTimeout,
		}
		viewer, err := app.NewApp(analyzer, activeTheme, opts)
		if err != nil {
			logger.Errorf("Error initializing viewer: %v", err)
			fmt.Fprintf(stderr, "%v\n", err)
			return exitFailure
		}
		if err := viewer.Run(); err != nil {
			logger.Errorf("Viewer exited with error: %v", err)
			fmt.Fprintf(stderr, "%v\n", err)
			return exitFailure
		}
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown mode %q (want ansi, spans, check, view or watch)\n", mode)
		return exitUsage
	}
}

// runBatch analyzes filePath once and writes the mode's output.
func runBatch(analyzer *app.Analyzer, activeTheme *theme.Theme, profile termenv.Profile, mode, filePath string, stdout, stderr io.Writer) int {
	res, err := analyzer.AnalyzeFile(filePath)
	if err != nil {
		logger.Errorf("Analysis failed: %v", err)
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}

	switch mode {
	case "spans":
		err = render.Dump(stdout, res.Text, res.Spans)
	case "check":
		_, err = io.WriteString(stdout, res.Report())
		if err == nil && res.Blocking() {
			return exitBlocking
		}
	default:
		err = render.WriteProfile(stdout, res.Text, res.Spans, activeTheme, profile)
	}
	if err != nil {
		fmt.Fprintf(stderr, "writing output: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// loadedThemes resolves every theme the manager knows, in name order.
func loadedThemes(m *theme.Manager) []*theme.Theme {
	var out []*theme.Theme
	for _, name := range m.ListThemes() {
		if t, err := m.GetTheme(name); err == nil {
			out = append(out, t)
		}
	}
	return out
}
