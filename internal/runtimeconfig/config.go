package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrDefaultLocaleRequired = errors.New("guides config: default locale is required")
var ErrSourceLocaleRequired = errors.New("guides config: source locale is required")
var ErrLocaleNotConfigured = errors.New("guides config: locale missing from configured locale list")
var ErrCacheMaxEntriesInvalid = errors.New("guides config: cache max entries must be zero or positive")
var ErrLoggingProviderRequired = errors.New("guides config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("guides config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("guides config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("guides config: logging format is invalid")

// Config aggregates locale, bundle, cache, and routing settings for the
// guides module. Fields use simple types so host applications can extend
// them later.
type Config struct {
	Enabled    bool
	I18N       I18NConfig
	Bundles    BundleConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Markdown   MarkdownConfig
	Logging    LoggingConfig
	Features   Features
}

// I18NConfig captures the locale chain the resolver works with. The source
// locale is the canonical fallback and must carry a bundle for every content
// key that has any bundle.
type I18NConfig struct {
	DefaultLocale     string
	SourceLocale      string
	Locales           []string
	PlaceholderPrefix string
}

// BundleConfig captures where locale bundles are loaded from.
type BundleConfig struct {
	BasePath         string
	ValidateCoverage bool
}

// CacheConfig controls the extras cache. MaxEntries zero keeps the
// identity-scoped unbounded mode; a positive value switches to a bounded LRU.
type CacheConfig struct {
	MaxEntries int
}

// NavigationConfig captures routing configuration for link building.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	Links       LinkBuilderConfig
}

// LinkBuilderConfig configures the go-urlkit based link builder.
type LinkBuilderConfig struct {
	DefaultGroup     string
	LocaleGroups     map[string]string
	DefaultRoute     string
	SlugParam        string
	LocaleParam      string
	AlternateLocales []string
}

// MarkdownConfig captures renderer behaviour for fallback markdown bodies.
type MarkdownConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger           bool
	MarkdownFallback bool
}

// DefaultConfig returns opinionated defaults: English as both default and
// source locale, filesystem bundles under "guides", coverage validation on.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		I18N: I18NConfig{
			DefaultLocale: "en",
			SourceLocale:  "en",
			Locales:       []string{"en"},
		},
		Bundles: BundleConfig{
			BasePath:         "guides",
			ValidateCoverage: true,
		},
		Cache:      CacheConfig{},
		Navigation: NavigationConfig{},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm", "linkify", "tasklist"},
		},
		Features: Features{
			MarkdownFallback: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	defaultLocale := strings.TrimSpace(cfg.I18N.DefaultLocale)
	if defaultLocale == "" {
		return ErrDefaultLocaleRequired
	}
	sourceLocale := strings.TrimSpace(cfg.I18N.SourceLocale)
	if sourceLocale == "" {
		return ErrSourceLocaleRequired
	}
	if len(cfg.I18N.Locales) > 0 {
		if !containsLocale(cfg.I18N.Locales, defaultLocale) {
			return fmt.Errorf("%w: %s", ErrLocaleNotConfigured, defaultLocale)
		}
		if !containsLocale(cfg.I18N.Locales, sourceLocale) {
			return fmt.Errorf("%w: %s", ErrLocaleNotConfigured, sourceLocale)
		}
	}
	if cfg.Cache.MaxEntries < 0 {
		return ErrCacheMaxEntriesInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func containsLocale(locales []string, target string) bool {
	want := strings.ToLower(strings.TrimSpace(target))
	for _, locale := range locales {
		if strings.ToLower(strings.TrimSpace(locale)) == want {
			return true
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
