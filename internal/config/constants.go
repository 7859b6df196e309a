package config

import "time"

// Base application details
const AppName = "tidelex"
const ConfigDirName = "tidelex"
const ThemesDirName = "themes"
const RulesDirName = "rules"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "tidelex.log"

// Analysis defaults
const DefaultLanguage = "Kotlin"
const DefaultCheckerFallback = "colon"
const DefaultColor = "truecolor"

// Watch mode
const DefaultDebounce = 65 * time.Millisecond
const DefaultCacheTTL = 10 * time.Minute

// Status Bar
const MessageTimeout = 4 * time.Second
