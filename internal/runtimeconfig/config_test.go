package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestValidateLocaleRules(t *testing.T) {
	t.Run("default locale required", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.I18N.DefaultLocale = "  "
		if err := cfg.Validate(); !errors.Is(err, ErrDefaultLocaleRequired) {
			t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
		}
	})

	t.Run("source locale required", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.I18N.SourceLocale = ""
		if err := cfg.Validate(); !errors.Is(err, ErrSourceLocaleRequired) {
			t.Fatalf("expected ErrSourceLocaleRequired, got %v", err)
		}
	})

	t.Run("default locale must be listed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.I18N.Locales = []string{"it", "en"}
		cfg.I18N.DefaultLocale = "fr"
		if err := cfg.Validate(); !errors.Is(err, ErrLocaleNotConfigured) {
			t.Fatalf("expected ErrLocaleNotConfigured, got %v", err)
		}
	})

	t.Run("locale comparison is case insensitive", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.I18N.Locales = []string{"EN", "it"}
		cfg.I18N.DefaultLocale = "en"
		cfg.I18N.SourceLocale = "en"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected valid config, got %v", err)
		}
	})
}

func TestValidateCacheRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.MaxEntries = -1
	if err := cfg.Validate(); !errors.Is(err, ErrCacheMaxEntriesInvalid) {
		t.Fatalf("expected ErrCacheMaxEntriesInvalid, got %v", err)
	}
}

func TestValidateLoggingRules(t *testing.T) {
	t.Run("provider required when logger feature enabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Features.Logger = true
		cfg.Logging.Provider = ""
		if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
			t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
		}
	})

	t.Run("unknown provider rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Features.Logger = true
		cfg.Logging.Provider = "syslog"
		if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
			t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
		}
	})

	t.Run("gologger format validated", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Features.Logger = true
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = "xml"
		if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
			t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
		}
	})

	t.Run("logging ignored when feature disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Provider = "syslog"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected valid config with logger feature off, got %v", err)
		}
	})
}
