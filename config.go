package guides

import "github.com/goliatone/go-guides/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrSourceLocaleRequired    = runtimeconfig.ErrSourceLocaleRequired
	ErrLocaleNotConfigured     = runtimeconfig.ErrLocaleNotConfigured
	ErrCacheMaxEntriesInvalid  = runtimeconfig.ErrCacheMaxEntriesInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config            = runtimeconfig.Config
	I18NConfig        = runtimeconfig.I18NConfig
	BundleConfig      = runtimeconfig.BundleConfig
	CacheConfig       = runtimeconfig.CacheConfig
	NavigationConfig  = runtimeconfig.NavigationConfig
	LinkBuilderConfig = runtimeconfig.LinkBuilderConfig
	MarkdownConfig    = runtimeconfig.MarkdownConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	Features          = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
