package i18n

import (
	"strings"

	"github.com/goliatone/go-guides/internal/manifest"
)

// Value is a resolved translation. Locale names the chain member that
// satisfied the lookup.
type Value struct {
	Raw    any
	Locale string
}

// String coerces the resolved value into a trimmed string when possible.
func (v Value) String() string {
	raw, ok := v.Raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(raw)
}

// Strings coerces the resolved value into a list of non-empty strings. Scalar
// strings become a single-element list.
func (v Value) Strings() []string {
	switch typed := v.Raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	case []string:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if str, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(str); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
		return out
	default:
		return nil
	}
}

// Chain deduplicates a locale preference list while preserving first-seen
// order. Empty members are dropped.
func Chain(locales ...string) []string {
	out := make([]string, 0, len(locales))
	seen := map[string]struct{}{}
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// Resolver walks a locale chain against the catalog, returning the first
// genuinely translated value for a dotted key path. Resolution is pure and
// synchronous; it always runs to completion.
type Resolver struct {
	catalog           *Catalog
	sourceLocale      string
	defaultLocale     string
	placeholderPrefix string
}

// ResolverOption customizes resolver construction.
type ResolverOption func(*Resolver)

// WithDefaultLocale inserts a default locale between the requested locale and
// the source locale in chains built by ChainFor.
func WithDefaultLocale(locale string) ResolverOption {
	return func(r *Resolver) {
		r.defaultLocale = normalizeLocale(locale)
	}
}

// WithPlaceholderPrefix configures the static prefix stripped before
// comparing a resolved string against its own lookup key.
func WithPlaceholderPrefix(prefix string) ResolverOption {
	return func(r *Resolver) {
		r.placeholderPrefix = strings.TrimSpace(prefix)
	}
}

// NewResolver builds a resolver over the loaded catalog. sourceLocale is the
// canonical final fallback (typically "en").
func NewResolver(catalog *Catalog, sourceLocale string, opts ...ResolverOption) *Resolver {
	resolver := &Resolver{
		catalog:      catalog,
		sourceLocale: normalizeLocale(sourceLocale),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

// SourceLocale returns the canonical fallback locale.
func (r *Resolver) SourceLocale() string {
	return r.sourceLocale
}

// ChainFor builds the standard fallback chain for a request: active runtime
// locale, requested locale, configured default, then the source locale, with
// duplicates removed in first-seen order.
func (r *Resolver) ChainFor(activeLocale, requestedLocale string) []string {
	return Chain(activeLocale, requestedLocale, r.defaultLocale, r.sourceLocale)
}

// Resolve walks the chain for the first non-empty, non-placeholder value at
// the dotted path. The second return is false when every chain member falls
// through; that outcome is ordinary data, not an error.
func (r *Resolver) Resolve(chain []string, key manifest.Key, path string) (Value, bool) {
	path = strings.TrimSpace(path)
	if r == nil || path == "" {
		return Value{}, false
	}

	for _, locale := range chain {
		bundle, ok := r.catalog.Bundle(locale, key)
		if !ok {
			continue
		}
		raw, ok := lookupPath(map[string]any(bundle), path)
		if !ok {
			continue
		}
		if !resolved(raw) {
			continue
		}
		if str, isString := raw.(string); isString && r.isPlaceholder(str, path) {
			continue
		}
		return Value{Raw: raw, Locale: locale}, true
	}
	return Value{}, false
}

// ResolveFor is a convenience that builds the standard chain before resolving.
func (r *Resolver) ResolveFor(activeLocale, requestedLocale string, key manifest.Key, path string) (Value, bool) {
	return r.Resolve(r.ChainFor(activeLocale, requestedLocale), key, path)
}

// HasLocalizedContent reports whether the locale authored its own bundle for
// the key, i.e. whether the structured branch can render without fallback.
func (r *Resolver) HasLocalizedContent(locale string, key manifest.Key) bool {
	if r == nil {
		return false
	}
	return r.catalog.HasBundle(locale, key)
}

// isPlaceholder flags strings that echo their own lookup key back, with or
// without the static prefix. A genuine authored value equal to the key text
// is indistinguishable here; that ambiguity is accepted rather than guessed at.
func (r *Resolver) isPlaceholder(value, path string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == path {
		return true
	}
	if r.placeholderPrefix != "" && trimmed == r.placeholderPrefix+path {
		return true
	}
	return false
}

// resolved reports whether a raw value counts as present. Empty strings,
// empty lists, and nil fall through to the next locale.
func resolved(raw any) bool {
	switch typed := raw.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(typed) != ""
	case []any:
		return len(typed) > 0
	case []string:
		return len(typed) > 0
	case map[string]any:
		return len(typed) > 0
	default:
		return true
	}
}

// lookupPath walks a dotted path through nested map branches.
func lookupPath(tree map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = tree
	for _, part := range parts {
		branch, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := branch[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
