package extras

import (
	"errors"

	"github.com/goliatone/go-guides/internal/guidecontent"
	"github.com/goliatone/go-guides/internal/logging"
	"github.com/goliatone/go-guides/internal/reqctx"
	"github.com/goliatone/go-guides/pkg/interfaces"
)

var (
	ErrBuildFuncRequired = errors.New("extras: build function is required")
	ErrRenderersRequired = errors.New("extras: structured and fallback renderers are required")
)

// RenderResult is the outcome of branch selection: the produced markup and
// which branch produced it.
type RenderResult struct {
	Markup     string
	Structured bool
}

// Lead renders the article lead by picking exactly one of the structured or
// fallback branches per request.
type Lead struct {
	article *Article
}

// Article is the structured-article descriptor exposed alongside the lead.
// It shares the lead's cache, so GetExtras from either path computes once.
type Article struct {
	cache            *Cache
	build            BuildFunc
	renderStructured RenderFunc
	renderFallback   RenderFunc
	selectToc        TocSelector
	isStructured     StructuredFunc
	logger           interfaces.Logger
}

// LeadOption customizes lead construction.
type LeadOption func(*Article)

// WithTocSelector installs a custom ToC selector. Its result is used only
// when it returns a genuine list; otherwise the context default applies.
func WithTocSelector(selector TocSelector) LeadOption {
	return func(a *Article) {
		a.selectToc = selector
	}
}

// WithStructuredFunc replaces the default branch predicate.
func WithStructuredFunc(fn StructuredFunc) LeadOption {
	return func(a *Article) {
		if fn != nil {
			a.isStructured = fn
		}
	}
}

// WithCache shares an externally owned cache instead of the lead-owned one.
func WithCache(cache *Cache) LeadOption {
	return func(a *Article) {
		if cache != nil {
			a.cache = cache
		}
	}
}

// WithLogger attaches a logger for branch-selection diagnostics.
func WithLogger(logger interfaces.Logger) LeadOption {
	return func(a *Article) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewStructuredLead wires the extras builder and the two render branches into
// a lead renderer plus its structured-article descriptor. The cache is owned
// by the pair and lives for the route module's lifetime.
func NewStructuredLead(build BuildFunc, structured, fallback RenderFunc, opts ...LeadOption) (*Lead, *Article, error) {
	if build == nil {
		return nil, nil, ErrBuildFuncRequired
	}
	if structured == nil || fallback == nil {
		return nil, nil, ErrRenderersRequired
	}

	cache, err := NewCache()
	if err != nil {
		return nil, nil, err
	}

	article := &Article{
		cache:            cache,
		build:            build,
		renderStructured: structured,
		renderFallback:   fallback,
		logger:           logging.NoOp(),
	}
	article.isStructured = article.defaultStructured

	for _, opt := range opts {
		opt(article)
	}

	return &Lead{article: article}, article, nil
}

// Render picks the branch for this request and renders it. Exactly one of
// the two branches runs.
func (l *Lead) Render(ctx *reqctx.Context) (RenderResult, error) {
	return l.article.render(ctx)
}

// Article returns the descriptor backing this lead.
func (l *Lead) Article() *Article {
	return l.article
}

// GetExtras computes the extras for the request at most once per (context
// identity, locale) pair; repeat calls return the cached value.
func (a *Article) GetExtras(ctx *reqctx.Context) *Extras {
	return a.cache.GetOrCompute(ctx, a.build)
}

// IsStructured reports whether the structured branch renders this request.
func (a *Article) IsStructured(ctx *reqctx.Context) bool {
	return a.isStructured(ctx, a.GetExtras(ctx))
}

// RenderStructured renders the structured branch directly.
func (a *Article) RenderStructured(ctx *reqctx.Context) (string, error) {
	return a.renderStructured(ctx, a.GetExtras(ctx))
}

// RenderFallback renders the fallback branch directly.
func (a *Article) RenderFallback(ctx *reqctx.Context) (string, error) {
	return a.renderFallback(ctx, a.GetExtras(ctx))
}

// SelectTocItems returns the custom selector's list when it produces one,
// otherwise the context's own default list verbatim.
func (a *Article) SelectTocItems(ctx *reqctx.Context) []guidecontent.TocItem {
	if a.selectToc != nil {
		if selected := a.selectToc(ctx, a.GetExtras(ctx)); selected != nil {
			return selected
		}
	}
	if ctx == nil {
		return nil
	}
	return ctx.DefaultToc
}

func (a *Article) render(ctx *reqctx.Context) (RenderResult, error) {
	built := a.GetExtras(ctx)

	if a.isStructured(ctx, built) {
		markup, err := a.renderStructured(ctx, built)
		if err != nil {
			return RenderResult{}, err
		}
		return RenderResult{Markup: markup, Structured: true}, nil
	}

	a.logger.Debug("rendering fallback branch",
		"content_key", contextKeyString(ctx),
		"locale", contextLocale(ctx),
	)
	markup, err := a.renderFallback(ctx, built)
	if err != nil {
		return RenderResult{}, err
	}
	return RenderResult{Markup: markup, Structured: false}, nil
}

// defaultStructured reads the extras' own flag when set, else the context's
// localized-content flag.
func (a *Article) defaultStructured(ctx *reqctx.Context, built *Extras) bool {
	if built != nil && built.HasStructured != nil {
		return *built.HasStructured
	}
	if ctx == nil {
		return false
	}
	return ctx.RawLocalized
}

func contextKeyString(ctx *reqctx.Context) string {
	if ctx == nil {
		return ""
	}
	return string(ctx.ContentKey)
}

func contextLocale(ctx *reqctx.Context) string {
	if ctx == nil {
		return ""
	}
	return ctx.Locale
}
