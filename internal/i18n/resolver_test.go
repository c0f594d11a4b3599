package i18n

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-guides/internal/manifest"
	"github.com/goliatone/go-guides/pkg/interfaces"
)

type stubSource struct {
	bundles map[string]map[string]interfaces.Bundle
}

func (s *stubSource) Bundle(_ context.Context, locale string, key string) (interfaces.Bundle, bool, error) {
	byKey, ok := s.bundles[locale]
	if !ok {
		return nil, false, nil
	}
	bundle, ok := byKey[key]
	return bundle, ok, nil
}

func testCatalog(t *testing.T, bundles map[string]map[string]interfaces.Bundle, keys ...manifest.Key) *Catalog {
	t.Helper()

	locales := make([]string, 0, len(bundles))
	for locale := range bundles {
		locales = append(locales, locale)
	}

	catalog, err := LoadCatalog(context.Background(), &stubSource{bundles: bundles}, locales, keys, nil)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return catalog
}

func TestChainDeduplicatesPreservingOrder(t *testing.T) {
	chain := Chain("fr", "", "en", "FR", "it", "en")
	want := []string{"fr", "en", "it"}

	if len(chain) != len(want) {
		t.Fatalf("expected %v, got %v", want, chain)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, chain)
		}
	}
}

func TestResolveFallbackOrdering(t *testing.T) {
	catalog := testCatalog(t, map[string]map[string]interfaces.Bundle{
		"fr": {"guide-x": {"intro": map[string]any{"other": "Bonjour"}}},
		"en": {"guide-x": {"greeting": "Hello", "intro": map[string]any{"greeting": "Hi"}}},
	}, "guide-x")
	resolver := NewResolver(catalog, "en")

	t.Run("missing key falls through to en", func(t *testing.T) {
		value, ok := resolver.Resolve([]string{"fr", "en"}, "guide-x", "greeting")
		if !ok {
			t.Fatal("expected resolution")
		}
		if value.String() != "Hello" {
			t.Fatalf("expected Hello, got %q", value.String())
		}
		if value.Locale != "en" {
			t.Fatalf("expected en, got %q", value.Locale)
		}
	})

	t.Run("nested path", func(t *testing.T) {
		value, ok := resolver.Resolve([]string{"fr", "en"}, "guide-x", "intro.greeting")
		if !ok || value.String() != "Hi" {
			t.Fatalf("expected Hi, got %+v", value)
		}
	})

	t.Run("exhausted chain returns unresolved", func(t *testing.T) {
		if _, ok := resolver.Resolve([]string{"fr", "en"}, "guide-x", "missing.path"); ok {
			t.Fatal("expected unresolved signal")
		}
	})
}

func TestResolveSkipsPlaceholders(t *testing.T) {
	catalog := testCatalog(t, map[string]map[string]interfaces.Bundle{
		"fr": {"guide-x": {
			"greeting": "greeting",
			"farewell": "guides.farewell",
		}},
		"en": {"guide-x": {
			"greeting": "Hello",
			"farewell": "Goodbye",
		}},
	}, "guide-x")
	resolver := NewResolver(catalog, "en", WithPlaceholderPrefix("guides."))

	t.Run("bare key echo", func(t *testing.T) {
		value, ok := resolver.Resolve([]string{"fr", "en"}, "guide-x", "greeting")
		if !ok || value.String() != "Hello" {
			t.Fatalf("placeholder should be skipped, got %+v", value)
		}
	})

	t.Run("prefixed key echo", func(t *testing.T) {
		value, ok := resolver.Resolve([]string{"fr", "en"}, "guide-x", "farewell")
		if !ok || value.String() != "Goodbye" {
			t.Fatalf("prefixed placeholder should be skipped, got %+v", value)
		}
	})
}

func TestResolveSkipsEmptyValues(t *testing.T) {
	catalog := testCatalog(t, map[string]map[string]interfaces.Bundle{
		"fr": {"guide-x": {
			"title": "   ",
			"steps": []any{},
		}},
		"en": {"guide-x": {
			"title": "Billing guide",
			"steps": []any{"one", "two"},
		}},
	}, "guide-x")
	resolver := NewResolver(catalog, "en")

	value, ok := resolver.Resolve([]string{"fr", "en"}, "guide-x", "title")
	if !ok || value.String() != "Billing guide" {
		t.Fatalf("blank string should fall through, got %+v", value)
	}

	value, ok = resolver.Resolve([]string{"fr", "en"}, "guide-x", "steps")
	if !ok {
		t.Fatal("expected steps resolution")
	}
	steps := value.Strings()
	if len(steps) != 2 || steps[0] != "one" {
		t.Fatalf("empty list should fall through, got %v", steps)
	}
}

func TestChainForIncludesDefaultAndSource(t *testing.T) {
	resolver := NewResolver(&Catalog{}, "en", WithDefaultLocale("es"))

	chain := resolver.ChainFor("it", "fr")
	want := []string{"it", "fr", "es", "en"}
	if len(chain) != len(want) {
		t.Fatalf("expected %v, got %v", want, chain)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, chain)
		}
	}
}

func TestHasLocalizedContent(t *testing.T) {
	catalog := testCatalog(t, map[string]map[string]interfaces.Bundle{
		"en": {"guide-x": {"title": "X"}},
	}, "guide-x")
	resolver := NewResolver(catalog, "en")

	if !resolver.HasLocalizedContent("en", "guide-x") {
		t.Fatal("expected en bundle")
	}
	if resolver.HasLocalizedContent("it", "guide-x") {
		t.Fatal("expected no it bundle")
	}
}

func TestValidateCoverage(t *testing.T) {
	catalog := testCatalog(t, map[string]map[string]interfaces.Bundle{
		"it": {"guide-x": {"title": "X"}},
	}, "guide-x")

	err := catalog.ValidateCoverage("en", []manifest.Key{"guide-x"})
	if !errors.Is(err, ErrSourceLocaleCoverage) {
		t.Fatalf("expected coverage error, got %v", err)
	}

	covered := testCatalog(t, map[string]map[string]interfaces.Bundle{
		"it": {"guide-x": {"title": "X"}},
		"en": {"guide-x": {"title": "X"}},
	}, "guide-x")
	if err := covered.ValidateCoverage("en", []manifest.Key{"guide-x"}); err != nil {
		t.Fatalf("unexpected coverage error: %v", err)
	}

	// Keys with no bundles at all are exempt.
	if err := covered.ValidateCoverage("en", []manifest.Key{"guide-unwritten"}); err != nil {
		t.Fatalf("unexpected error for bundle-less key: %v", err)
	}
}
