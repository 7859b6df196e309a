package lang

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is wrapped by every rule validation failure.
var ErrInvalidRules = errors.New("invalid syntax rules")

// Block comment markers. Every other comment marker is a single-line marker.
const (
	BlockCommentStart = "/*"
	BlockCommentEnd   = "*/"
)

// Rules is the per-language vocabulary that drives highlighting.
// A Rules value is treated as immutable once handed to the highlighter.
type Rules struct {
	Keywords  []string `toml:"keywords" yaml:"keywords"`
	Types     []string `toml:"types" yaml:"types"`
	Modifiers []string `toml:"modifiers" yaml:"modifiers"`
	// Comments lists comment markers in priority order.
	Comments []string `toml:"comments" yaml:"comments"`
	// Strings lists single-character string delimiters.
	Strings []string `toml:"strings" yaml:"strings"`
}

// Validate rejects rule sets the highlighter cannot interpret.
func (r *Rules) Validate() error {
	for _, m := range r.Comments {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%w: empty comment marker", ErrInvalidRules)
		}
	}
	for _, d := range r.Strings {
		if utf8.RuneCountInString(d) != 1 {
			return fmt.Errorf("%w: string delimiter %q must be a single character", ErrInvalidRules, d)
		}
	}
	lists := map[string][]string{"keywords": r.Keywords, "types": r.Types, "modifiers": r.Modifiers}
	for name, words := range lists {
		for _, w := range words {
			if strings.TrimSpace(w) == "" {
				return fmt.Errorf("%w: empty entry in %s", ErrInvalidRules, name)
			}
		}
	}
	return nil
}

// Normalize removes case-insensitive duplicates from the word lists and
// duplicate markers, keeping the first occurrence.
func (r *Rules) Normalize() {
	r.Keywords = dedupe(r.Keywords, strings.ToLower)
	r.Types = dedupe(r.Types, strings.ToLower)
	r.Modifiers = dedupe(r.Modifiers, strings.ToLower)
	r.Comments = dedupe(r.Comments, nil)
	r.Strings = dedupe(r.Strings, nil)
}

func dedupe(items []string, key func(string) string) []string {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		k := item
		if key != nil {
			k = key(item)
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// HasBlockComments reports whether the rules enable /* */ comments.
func (r *Rules) HasBlockComments() bool {
	for _, m := range r.Comments {
		if m == BlockCommentStart {
			return true
		}
	}
	return false
}

// LineCommentMarkers returns the single-line markers in declaration order.
func (r *Rules) LineCommentMarkers() []string {
	var markers []string
	for _, m := range r.Comments {
		if m == BlockCommentStart || m == BlockCommentEnd {
			continue
		}
		markers = append(markers, m)
	}
	return markers
}

// Delimiters returns the string delimiters as runes.
func (r *Rules) Delimiters() []rune {
	out := make([]rune, 0, len(r.Strings))
	for _, d := range r.Strings {
		if c, size := utf8.DecodeRuneInString(d); size > 0 && c != utf8.RuneError {
			out = append(out, c)
		}
	}
	return out
}

// RuleFileExtensions lists the rule file formats LoadRulesFile accepts, in
// lookup order.
var RuleFileExtensions = []string{".toml", ".yaml", ".yml"}

// ParseRules decodes, validates and normalizes a TOML rule set.
func ParseRules(data []byte) (*Rules, error) {
	var rules Rules
	if _, err := toml.Decode(string(data), &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return finishRules(&rules)
}

// ParseRulesYAML is ParseRules for YAML documents.
func ParseRulesYAML(data []byte) (*Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return finishRules(&rules)
}

func finishRules(rules *Rules) (*Rules, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	rules.Normalize()
	return rules, nil
}

// LoadRulesFile reads a rule set from disk. Files ending in .yaml or .yml
// are YAML; anything else is TOML.
func LoadRulesFile(filePath string) (*Rules, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filePath, err)
	}
	parse := ParseRules
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		parse = ParseRulesYAML
	}
	rules, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules file '%s': %w", filePath, err)
	}
	return rules, nil
}
