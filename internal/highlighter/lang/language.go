package lang

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bethropolis/tidelex/internal/logger"
)

// RulesFS is the filesystem holding the built-in rule files.
var RulesFS fs.FS

// rulesDir, when set, is searched for <RulesPath>.toml, .yaml or .yml
// before RulesFS.
var rulesDir string

// Language represents a programming language with its highlighting rules.
type Language struct {
	// Name is the display name of the language
	Name string

	// Extensions maps file extensions to this language
	Extensions []string

	// RulesPath is the rule file base name (e.g. "java" for rules/java.toml)
	RulesPath string

	// CheckStyle names the heuristic the checker applies ("colon",
	// "semicolon" or "advisory"). Empty defers to the checker's table.
	CheckStyle string

	mu    sync.Mutex
	rules *Rules
}

// Rules loads, validates and caches the rule set of the language.
func (l *Language) Rules() (*Rules, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rules != nil {
		return l.rules, nil
	}
	if l.RulesPath == "" {
		return nil, fmt.Errorf("no rules path defined for language %s", l.Name)
	}

	rules, err := l.loadRules()
	if err != nil {
		logger.Warnf("Failed to load rules for language %s: %v", l.Name, err)
		return nil, err
	}
	l.rules = rules
	return rules, nil
}

// SetRules installs a rule set directly, bypassing file lookup.
func (l *Language) SetRules(rules *Rules) {
	l.mu.Lock()
	l.rules = rules
	l.mu.Unlock()
}

func (l *Language) resetRules() {
	l.mu.Lock()
	l.rules = nil
	l.mu.Unlock()
}

func (l *Language) loadRules() (*Rules, error) {
	fileName := l.RulesPath + ".toml"

	registry.RLock()
	dir := rulesDir
	registry.RUnlock()

	if dir != "" {
		for _, ext := range RuleFileExtensions {
			override := filepath.Join(dir, l.RulesPath+ext)
			rules, err := LoadRulesFile(override)
			if err == nil {
				logger.DebugTagf("lang", "Loaded override rules from %s for %s", override, l.Name)
				return rules, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if RulesFS == nil {
		return nil, fmt.Errorf("RulesFS not set - cannot load rules for %s", l.Name)
	}
	rulesPath := "rules/" + fileName
	data, err := fs.ReadFile(RulesFS, rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rulesPath, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rulesPath, err)
	}
	logger.DebugTagf("lang", "Loaded rules from %s for %s (%d keywords)", rulesPath, l.Name, len(rules.Keywords))
	return rules, nil
}

// SetRulesDir points rule lookup at a directory of override files and
// drops every cached rule set. An empty dir disables overrides.
func SetRulesDir(dir string) {
	registry.Lock()
	rulesDir = dir
	languages := append([]*Language(nil), registry.languages...)
	registry.Unlock()

	for _, l := range languages {
		l.resetRules()
	}
}
