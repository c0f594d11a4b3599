package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-guides/pkg/interfaces"
)

const (
	rootModule      = "guides"
	manifestModule  = "guides.manifest"
	checklistModule = "guides.checklist"
	i18nModule      = "guides.i18n"
	composerModule  = "guides.composer"
	extrasModule    = "guides.extras"
	bundleModule    = "guides.bundle"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ManifestLogger returns the logger namespace reserved for the manifest registry.
func ManifestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, manifestModule)
}

// ChecklistLogger returns the logger namespace reserved for checklist derivation.
func ChecklistLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, checklistModule)
}

// I18NLogger returns the logger namespace reserved for locale resolution.
func I18NLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, i18nModule)
}

// ComposerLogger returns the logger namespace reserved for page composition.
func ComposerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, composerModule)
}

// ExtrasLogger returns the logger namespace reserved for extras building.
func ExtrasLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, extrasModule)
}

// BundleLogger returns the logger namespace reserved for bundle loading.
func BundleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, bundleModule)
}

// WithResolutionContext enriches the provided logger with common resolution
// fields such as content key and locale. Empty values are ignored.
func WithResolutionContext(logger interfaces.Logger, key, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		fields["content_key"] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields["locale"] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
