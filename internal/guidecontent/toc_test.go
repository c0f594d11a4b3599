package guidecontent

import (
	"reflect"
	"testing"
)

func TestNormalizeTocFromSections(t *testing.T) {
	sections := []Section{
		{ID: "setup", Title: "Setup", IncludeInToc: true},
		{ID: "hidden", Title: "Hidden", IncludeInToc: false},
		{ID: "untitled", IncludeInToc: true},
	}

	toc := NormalizeToc(nil, sections, nil)
	want := []TocItem{
		{Href: "#setup", Label: "Setup"},
		{Href: "#untitled", Label: "Section 3"},
	}
	if !reflect.DeepEqual(toc, want) {
		t.Fatalf("expected %v, got %v", want, toc)
	}
}

func TestNormalizeTocExplicitEntriesWin(t *testing.T) {
	raw := []any{
		map[string]any{"href": "#custom", "label": "Custom"},
	}
	sections := []Section{{ID: "setup", Title: "Setup", IncludeInToc: true}}

	toc := NormalizeToc(raw, sections, nil)
	if len(toc) != 1 || toc[0].Href != "#custom" {
		t.Fatalf("explicit entries should win over derivation: %v", toc)
	}
}

func TestNormalizeTocRejectsBadHrefs(t *testing.T) {
	raw := []any{
		map[string]any{"href": "https://example.com", "label": "External"},
		map[string]any{"href": "#bad anchor", "label": "Spaces"},
		map[string]any{"href": "no-hash", "label": "Missing hash"},
		map[string]any{"href": "#good-one", "label": "Good"},
	}

	toc := NormalizeToc(raw, nil, nil)
	if len(toc) != 1 || toc[0].Href != "#good-one" {
		t.Fatalf("invalid hrefs should drop: %v", toc)
	}
}

func TestNormalizeTocDeduplicatesByHref(t *testing.T) {
	raw := []any{
		map[string]any{"href": "#dup", "label": "First"},
		map[string]any{"href": "#dup", "label": "Second"},
	}

	toc := NormalizeToc(raw, nil, nil)
	if len(toc) != 1 || toc[0].Label != "First" {
		t.Fatalf("first occurrence should win: %v", toc)
	}
}

func TestNormalizeTocFaqAnchorInvariant(t *testing.T) {
	sections := []Section{{ID: "setup", Title: "Setup", IncludeInToc: true}}
	faqs := []Faq{{Question: "Q?", Answers: []string{"A."}}}

	t.Run("appended when faqs exist", func(t *testing.T) {
		toc := NormalizeToc(nil, sections, faqs)
		count := 0
		for _, item := range toc {
			if item.Href == FaqAnchor {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("expected exactly one faq anchor, got %d in %v", count, toc)
		}
		if toc[len(toc)-1].Href != FaqAnchor {
			t.Fatalf("faq anchor should be last: %v", toc)
		}
	})

	t.Run("removed when faqs empty", func(t *testing.T) {
		raw := []any{
			map[string]any{"href": "#faqs", "label": "FAQs"},
			map[string]any{"href": "#setup", "label": "Setup"},
		}
		toc := NormalizeToc(raw, nil, nil)
		for _, item := range toc {
			if item.Href == FaqAnchor {
				t.Fatalf("faq anchor should be stripped when no faqs: %v", toc)
			}
		}
	})
}

func TestNormalizeTocIdempotent(t *testing.T) {
	sections := []Section{{ID: "setup", Title: "Setup", IncludeInToc: true}}
	faqs := []Faq{{Question: "Q?", Answers: []string{"A."}}}

	once := NormalizeToc(nil, sections, faqs)
	twice := NormalizeToc(once, sections, faqs)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent:\n%v\n%v", once, twice)
	}
}
