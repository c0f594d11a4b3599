package i18n

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-guides/internal/identity"
	"github.com/goliatone/go-guides/internal/logging"
	"github.com/goliatone/go-guides/internal/manifest"
	"github.com/goliatone/go-guides/pkg/interfaces"
)

var (
	ErrSourceRequired       = errors.New("i18n: bundle source is required")
	ErrSourceLocaleRequired = errors.New("i18n: source locale is required")
	ErrSourceLocaleCoverage = errors.New("i18n: source locale bundle missing for key")
)

// Catalog holds the locale bundles loaded for a set of content keys. Loading
// happens once, before composition; afterwards the catalog is read-only and
// safe for concurrent use.
type Catalog struct {
	bundles map[string]map[manifest.Key]interfaces.Bundle
}

// LoadCatalog pulls every (locale, key) bundle from the source. Missing
// bundles are not an error at this stage; loader failures are. Loading is the
// engine's only suspension point, so the context is honored here and nowhere
// downstream.
func LoadCatalog(ctx context.Context, source interfaces.BundleSource, locales []string, keys []manifest.Key, provider interfaces.LoggerProvider) (*Catalog, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	logger := logging.BundleLogger(provider)
	catalog := &Catalog{bundles: make(map[string]map[manifest.Key]interfaces.Bundle)}

	for _, locale := range Chain(locales...) {
		for _, key := range keys {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			bundle, ok, err := source.Bundle(ctx, locale, string(key))
			if err != nil {
				return nil, fmt.Errorf("i18n: load bundle %s/%s: %w", locale, key, err)
			}
			if !ok {
				continue
			}
			catalog.put(locale, key, bundle)
			logger.Trace("bundle loaded",
				"bundle_id", identity.BundleUUID(locale, string(key)).String(),
				"locale", locale,
				"content_key", string(key),
			)
		}
	}

	logger.Debug("bundle catalog loaded", "locales", len(catalog.bundles))
	return catalog, nil
}

func (c *Catalog) put(locale string, key manifest.Key, bundle interfaces.Bundle) {
	locale = normalizeLocale(locale)
	if locale == "" || key.IsZero() || bundle == nil {
		return
	}
	if c.bundles[locale] == nil {
		c.bundles[locale] = make(map[manifest.Key]interfaces.Bundle)
	}
	c.bundles[locale][key] = bundle
}

// Bundle returns the tree stored for (locale, key).
func (c *Catalog) Bundle(locale string, key manifest.Key) (interfaces.Bundle, bool) {
	if c == nil {
		return nil, false
	}
	byKey, ok := c.bundles[normalizeLocale(locale)]
	if !ok {
		return nil, false
	}
	bundle, ok := byKey[key]
	return bundle, ok
}

// HasBundle reports whether a locale authored its own bundle for the key.
func (c *Catalog) HasBundle(locale string, key manifest.Key) bool {
	_, ok := c.Bundle(locale, key)
	return ok
}

// Locales returns every locale that has at least one bundle for the key.
func (c *Catalog) Locales(key manifest.Key) []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.bundles))
	for locale, byKey := range c.bundles {
		if _, ok := byKey[key]; ok {
			out = append(out, locale)
		}
	}
	return out
}

// ValidateCoverage enforces the canonical-fallback invariant: every content
// key that has any localized bundle must also have a bundle in the source
// locale. Violations are fatal at startup.
func (c *Catalog) ValidateCoverage(sourceLocale string, keys []manifest.Key) error {
	sourceLocale = normalizeLocale(sourceLocale)
	if sourceLocale == "" {
		return ErrSourceLocaleRequired
	}
	for _, key := range keys {
		if len(c.Locales(key)) == 0 {
			continue
		}
		if !c.HasBundle(sourceLocale, key) {
			return fmt.Errorf("%w: %q", ErrSourceLocaleCoverage, key)
		}
	}
	return nil
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
