// Package extras memoizes the derived, render-ready object computed from raw
// localized content for one request, and picks between the structured and
// fallback render branches.
package extras

import (
	"github.com/goliatone/go-guides/internal/guidecontent"
	"github.com/goliatone/go-guides/internal/reqctx"
)

// Extras is the derived object handed to render callbacks: intro paragraphs,
// normalized sections/FAQs/ToC/media, and the structured flag.
type Extras struct {
	Intro    []string
	Sections []guidecontent.Section
	Faqs     []guidecontent.Faq
	Toc      []guidecontent.TocItem
	Media    []guidecontent.Media

	// HasStructured, when set, decides branch selection outright. When nil
	// the context-level localized flag decides instead.
	HasStructured *bool

	// Locale is the locale the extras were derived for.
	Locale string
}

// Structured is a convenience for building the HasStructured field.
func Structured(v bool) *bool { return &v }

// BuildFunc computes extras for one request. It is invoked at most once per
// (context identity, locale) pair; repeat calls hit the cache.
type BuildFunc func(*reqctx.Context) *Extras

// RenderFunc turns extras into markup for one of the two branches.
type RenderFunc func(*reqctx.Context, *Extras) (string, error)

// TocSelector optionally overrides ToC selection. Returning nil defers to the
// context's own default list.
type TocSelector func(*reqctx.Context, *Extras) []guidecontent.TocItem

// StructuredFunc decides which branch renders.
type StructuredFunc func(*reqctx.Context, *Extras) bool
