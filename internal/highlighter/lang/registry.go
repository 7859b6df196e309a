package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bethropolis/tidelex/internal/logger"
)

// ErrUnknownLanguage is returned when a language name is not registered.
var ErrUnknownLanguage = errors.New("unknown language")

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages     []*Language
		extToLanguage map[string]*Language
		nameToLang    map[string]*Language
	}

	initOnce sync.Once
)

// Initialize ensures the registry is ready for use
func Initialize() {
	initOnce.Do(func() {
		registry.extToLanguage = make(map[string]*Language)
		registry.nameToLang = make(map[string]*Language)
		registry.languages = make([]*Language, 0)
		logger.Debugf("Language registry initialized")
	})
}

// Register adds a language to the registry. A language registered under an
// existing name replaces the previous one.
func Register(lang *Language) {
	Initialize()

	registry.Lock()
	defer registry.Unlock()

	key := strings.ToLower(lang.Name)
	if old, ok := registry.nameToLang[key]; ok {
		for i, l := range registry.languages {
			if l == old {
				registry.languages = append(registry.languages[:i], registry.languages[i+1:]...)
				break
			}
		}
		for ext, l := range registry.extToLanguage {
			if l == old {
				delete(registry.extToLanguage, ext)
			}
		}
	}
	registry.languages = append(registry.languages, lang)
	registry.nameToLang[key] = lang

	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok && existing.Name != lang.Name {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}

	logger.Debugf("Registered language: %s with extensions: %v", lang.Name, lang.Extensions)
}

// GetForFile returns the language for a given file path, or nil.
func GetForFile(filePath string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	return registry.extToLanguage[ext]
}

// GetByName returns the language registered under name (case-insensitive).
func GetByName(name string) (*Language, error) {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	if l, ok := registry.nameToLang[strings.ToLower(name)]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, name)
}

// ForFileOrDefault resolves the language by extension, falling back to the
// language named defaultName when the extension is unrecognized.
func ForFileOrDefault(filePath, defaultName string) (*Language, error) {
	if l := GetForFile(filePath); l != nil {
		return l, nil
	}
	logger.DebugTagf("lang", "No language for '%s', using default %s", filePath, defaultName)
	return GetByName(defaultName)
}

// GetAll returns all registered languages
func GetAll() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
