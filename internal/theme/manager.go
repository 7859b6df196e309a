// internal/theme/manager.go
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidelex/internal/logger"
)

// ErrUnknownTheme is returned when a theme name is not loaded.
var ErrUnknownTheme = errors.New("unknown theme")

// Manager holds built-in and user themes keyed by lowercase name.
type Manager struct {
	themes    map[string]*Theme
	themesDir string
	mutex     sync.RWMutex
}

// NewManager loads the built-in themes plus every *.toml file in themesDir.
// A missing or empty themesDir only yields the built-ins.
func NewManager(themesDir string) (*Manager, error) {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}
	mgr.add(&Light)
	mgr.add(&Dark)

	if themesDir == "" {
		return mgr, nil
	}
	if err := mgr.LoadThemesFromDir(); err != nil {
		return mgr, err
	}
	return mgr, nil
}

func (m *Manager) add(t *Theme) {
	name := strings.ToLower(t.Name)
	if existing, ok := m.themes[name]; ok && existing != t {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[name] = t
}

// LoadThemesFromDir scans the themes directory and loads .toml files.
// Files that fail to parse are logged and skipped.
func (m *Manager) LoadThemesFromDir() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.themesDir == "" {
		return errors.New("theme directory path is not set")
	}

	files, err := os.ReadDir(m.themesDir)
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		t, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}
		m.add(t)
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

// GetTheme returns a specific theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if t, ok := m.themes[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
}

// Select returns the named theme, or the built-in for the dark flag when
// name is empty.
func (m *Manager) Select(name string, dark bool) (*Theme, error) {
	if name == "" {
		return Builtin(dark), nil
	}
	return m.GetTheme(name)
}

// ListThemes returns the sorted names of all loaded themes.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
