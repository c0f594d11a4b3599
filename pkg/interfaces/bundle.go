package interfaces

import "context"

// Bundle is the nested key/value tree of authored content for one locale and
// one content key. Values are either strings, numbers, booleans, []any, or
// nested map[string]any branches.
type Bundle map[string]any

// BundleSource loads locale bundles keyed by (locale, content key). The
// second return reports whether a bundle exists at all; loader errors are
// reserved for I/O failures, not missing bundles.
type BundleSource interface {
	Bundle(ctx context.Context, locale string, key string) (Bundle, bool, error)
}

// BundleValidator is an optional extension for sources that can enumerate
// which locales authored a bundle for a key. When a source implements it the
// engine asks it directly instead of consulting the loaded catalog.
type BundleValidator interface {
	Locales(ctx context.Context, key string) ([]string, error)
}
