// Package reqctx carries per-request state through resolution and rendering.
// A Context is created by the rendering layer for each request and owns every
// piece of request-scoped data, so nothing leaks between requests.
package reqctx

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-guides/internal/guidecontent"
	"github.com/goliatone/go-guides/internal/manifest"
)

// Context identifies one request and the guide it targets. The ID doubles as
// the extras-cache identity key; two requests never share an ID.
type Context struct {
	ID         uuid.UUID
	Locale     string
	ContentKey manifest.Key

	// RawLocalized is the rendering layer's flag for whether the active
	// locale has localized content. Branch selection falls back to it when
	// the extras object does not carry its own structured flag.
	RawLocalized bool

	// DefaultToc is the context's own ToC list, used verbatim when no custom
	// selector produces one.
	DefaultToc []guidecontent.TocItem
}

// Option customizes context construction.
type Option func(*Context)

// WithDefaultToc seeds the context's fallback ToC list.
func WithDefaultToc(items []guidecontent.TocItem) Option {
	return func(c *Context) {
		c.DefaultToc = append([]guidecontent.TocItem(nil), items...)
	}
}

// New creates a request context with a fresh identity.
func New(locale string, key manifest.Key, rawLocalized bool, opts ...Option) *Context {
	ctx := &Context{
		ID:           uuid.New(),
		Locale:       strings.ToLower(strings.TrimSpace(locale)),
		ContentKey:   key,
		RawLocalized: rawLocalized,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}
