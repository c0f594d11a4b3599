// Package guides is a content-resolution and page-definition composition
// engine for multi-locale guide content. It validates a manifest of content
// entries at startup, loads per-locale bundles, resolves values across an
// ordered locale fallback chain, and composes immutable page definitions
// consumed by an external rendering layer.
package guides

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-guides/internal/bundle"
	"github.com/goliatone/go-guides/internal/checklist"
	"github.com/goliatone/go-guides/internal/composer"
	"github.com/goliatone/go-guides/internal/extras"
	"github.com/goliatone/go-guides/internal/i18n"
	"github.com/goliatone/go-guides/internal/logging"
	"github.com/goliatone/go-guides/internal/logging/gologger"
	"github.com/goliatone/go-guides/internal/manifest"
	"github.com/goliatone/go-guides/internal/markdown"
	"github.com/goliatone/go-guides/internal/reqctx"
	"github.com/goliatone/go-guides/pkg/interfaces"
)

// ManifestEntry exports the manifest entry seed type.
type ManifestEntry = manifest.Entry

// ContentKey exports the stable content identifier type.
type ContentKey = manifest.Key

// ChecklistOverride exports the manifest checklist override seed type.
type ChecklistOverride = manifest.ChecklistOverride

// Registry exports the manifest registry contract.
type Registry = manifest.Registry

// ChecklistSnapshot exports the derived completeness snapshot.
type ChecklistSnapshot = checklist.Snapshot

// ChecklistItem exports a single checklist line item.
type ChecklistItem = checklist.Item

// Template exports the composer base template type.
type Template = composer.Template

// Fragment exports the composer override fragment type.
type Fragment = composer.Fragment

// PageDefinition exports the composed page definition.
type PageDefinition = composer.PageDefinition

// OptionBag exports the composer option bag type.
type OptionBag = composer.OptionBag

// RequestContext exports the per-request context type.
type RequestContext = reqctx.Context

// Extras exports the derived render-ready extras object.
type Extras = extras.Extras

// Lead exports the structured-lead renderer.
type Lead = extras.Lead

// Article exports the structured-article descriptor.
type Article = extras.Article

// BuildExtrasFunc exports the extras builder signature.
type BuildExtrasFunc = extras.BuildFunc

// RenderBranchFunc exports the branch renderer signature.
type RenderBranchFunc = extras.RenderFunc

// Value exports the resolver's resolved value type.
type Value = i18n.Value

// BundleSource exports the locale bundle loader contract.
type BundleSource = interfaces.BundleSource

var (
	ErrBundleSourceRequired = errors.New("guides: bundle source is required")
	ErrNotStarted           = errors.New("guides: module has not been started")
	ErrRouteRegistered      = errors.New("guides: route already registered for key")
)

const (
	configInvalidCode  = "GUIDES_CONFIG_INVALID"
	bundleLoadCode     = "GUIDES_BUNDLES_UNAVAILABLE"
	bundleCoverageCode = "GUIDES_BUNDLE_COVERAGE"
)

// Module is the top level guides runtime facade. Construction validates the
// manifest; Start loads bundles and builds the resolver. After Start the
// module is read-only and safe for unlimited concurrent readers.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger

	registry *manifest.Registry
	source   interfaces.BundleSource
	catalog  *i18n.Catalog
	resolver *i18n.Resolver
	composer *composer.Composer
	markdown *markdown.Renderer

	mu      sync.RWMutex
	routes  map[manifest.Key]*composer.PageDefinition
	started bool
}

// Option customizes module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	seed     []ManifestEntry
	fsys     fs.FS
	source   interfaces.BundleSource
	provider interfaces.LoggerProvider
}

// WithManifest supplies the manifest entry seed list.
func WithManifest(entries []ManifestEntry) Option {
	return func(o *moduleOptions) {
		o.seed = entries
	}
}

// WithBundleFS loads locale bundles from the filesystem, rooted at the
// configured bundle base path.
func WithBundleFS(fsys fs.FS) Option {
	return func(o *moduleOptions) {
		o.fsys = fsys
	}
}

// WithBundleSource installs a custom bundle loader in place of the
// filesystem one.
func WithBundleSource(source interfaces.BundleSource) Option {
	return func(o *moduleOptions) {
		o.source = source
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// New constructs a guides module: validates configuration, builds and
// validates the manifest registry, and wires the composer. Bundle loading is
// deferred to Start so callers control the only suspension point.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapStartupError(err, "invalid guides configuration", configInvalidCode)
	}

	options := &moduleOptions{}
	for _, opt := range opts {
		opt(options)
	}

	provider, err := buildLoggerProvider(cfg, options.provider)
	if err != nil {
		return nil, wrapStartupError(err, "invalid logging configuration", configInvalidCode)
	}

	registry, err := manifest.NewRegistry(options.seed, manifest.WithLogger(logging.ManifestLogger(provider)))
	if err != nil {
		return nil, err
	}

	source := options.source
	if source == nil && options.fsys != nil {
		fsSource, err := bundle.NewSource(options.fsys, bundle.Config{BasePath: cfg.Bundles.BasePath})
		if err != nil {
			return nil, wrapStartupError(err, "invalid bundle configuration", configInvalidCode)
		}
		source = fsSource
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		logger:   logging.ModuleLogger(provider, ""),
		registry: registry,
		source:   source,
		composer: buildComposer(cfg, provider),
		routes:   make(map[manifest.Key]*composer.PageDefinition),
	}

	if cfg.Features.MarkdownFallback {
		m.markdown = markdown.NewRenderer(markdown.Options{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		})
	}

	return m, nil
}

// Start loads the bundle catalog, enforces source-locale coverage, and
// builds the resolver. It is the engine's only suspension point; the context
// bounds bundle loading and nothing else.
func (m *Module) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}
	if m.source == nil {
		return wrapStartupError(ErrBundleSourceRequired, "no bundle source configured", configInvalidCode)
	}

	catalog, err := i18n.LoadCatalog(ctx, m.source, m.cfg.I18N.Locales, m.registry.Keys(), m.provider)
	if err != nil {
		return wrapStartupError(err, "bundle catalog load failed", bundleLoadCode)
	}

	if m.cfg.Bundles.ValidateCoverage {
		if err := catalog.ValidateCoverage(m.cfg.I18N.SourceLocale, m.registry.Keys()); err != nil {
			return wrapStartupError(err, "bundle coverage validation failed", bundleCoverageCode)
		}
	}

	resolverOpts := []i18n.ResolverOption{
		i18n.WithDefaultLocale(m.cfg.I18N.DefaultLocale),
	}
	if prefix := strings.TrimSpace(m.cfg.I18N.PlaceholderPrefix); prefix != "" {
		resolverOpts = append(resolverOpts, i18n.WithPlaceholderPrefix(prefix))
	}

	m.catalog = catalog
	m.resolver = i18n.NewResolver(catalog, m.cfg.I18N.SourceLocale, resolverOpts...)
	m.started = true

	m.logger.Info("guides module started",
		"entries", m.registry.Len(),
		"locales", len(m.cfg.I18N.Locales),
	)
	return nil
}

// Manifest returns the validated registry.
func (m *Module) Manifest() *Registry {
	return m.registry
}

// Resolver returns the locale fallback resolver. Nil before Start.
func (m *Module) Resolver() *i18n.Resolver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolver
}

// Composer returns the page definition composer.
func (m *Module) Composer() *composer.Composer {
	return m.composer
}

// BundleLocales reports which locales authored their own bundle for the key.
// Sources that can enumerate locales are asked directly; otherwise the loaded
// catalog answers.
func (m *Module) BundleLocales(ctx context.Context, key ContentKey) ([]string, error) {
	if _, err := m.requireStarted(); err != nil {
		return nil, err
	}
	if validator, ok := m.source.(interfaces.BundleValidator); ok {
		return validator.Locales(ctx, key.String())
	}
	return m.catalog.Locales(key), nil
}

// ChecklistFor derives the locale-aware completeness snapshot for one entry:
// the raw snapshot adjusted by whether the locale authored its own bundle.
func (m *Module) ChecklistFor(key ContentKey, locale string) (ChecklistSnapshot, error) {
	resolver, err := m.requireStarted()
	if err != nil {
		return ChecklistSnapshot{}, err
	}

	entry, err := m.registry.Get(key)
	if err != nil {
		return ChecklistSnapshot{}, err
	}

	snapshot := checklist.Build(entry)
	snapshot = checklist.ApplyLocaleAwareTranslations(snapshot, resolver.HasLocalizedContent(locale, key))

	logger := logging.WithResolutionContext(logging.ChecklistLogger(m.provider), key.String(), locale)
	logger.Debug("checklist derived", "items", len(snapshot.Items))
	return snapshot, nil
}

// NewRequestContext creates the per-request context handed to page
// definition callbacks. The localized flag is derived from bundle presence
// for the requested locale.
func (m *Module) NewRequestContext(locale string, key ContentKey, opts ...reqctx.Option) (*RequestContext, error) {
	resolver, err := m.requireStarted()
	if err != nil {
		return nil, err
	}
	if _, err := m.registry.Get(key); err != nil {
		return nil, err
	}
	return reqctx.New(locale, key, resolver.HasLocalizedContent(locale, key), opts...), nil
}

// RegisterRoute composes a page definition for the entry once and stores it
// for the process lifetime. Registering the same key twice is an error; the
// stored definition is never recomposed per request.
func (m *Module) RegisterRoute(key ContentKey, base Template, override Fragment) (*PageDefinition, error) {
	if _, err := m.requireStarted(); err != nil {
		return nil, err
	}

	entry, err := m.registry.Get(key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.routes[key]; exists {
		return nil, goerrors.Wrap(ErrRouteRegistered, goerrors.CategoryValidation, key.String()).
			WithTextCode("GUIDES_ROUTE_DUPLICATE")
	}

	def, err := m.composer.Compose(entry, base, override)
	if err != nil {
		return nil, err
	}
	m.routes[key] = def
	return def, nil
}

// Route returns the composed definition for a registered key.
func (m *Module) Route(key ContentKey) (*PageDefinition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.routes[key]
	return def, ok
}

// NewStructuredLead wires an extras builder and two render branches into a
// lead renderer, with the cache sized from module configuration.
func (m *Module) NewStructuredLead(build BuildExtrasFunc, structured, fallback RenderBranchFunc, opts ...extras.LeadOption) (*Lead, *Article, error) {
	cacheOpts := []extras.CacheOption{}
	if m.cfg.Cache.MaxEntries > 0 {
		cacheOpts = append(cacheOpts, extras.WithMaxEntries(m.cfg.Cache.MaxEntries))
	}
	cache, err := extras.NewCache(cacheOpts...)
	if err != nil {
		return nil, nil, err
	}

	leadOpts := append([]extras.LeadOption{
		extras.WithCache(cache),
		extras.WithLogger(logging.ExtrasLogger(m.provider)),
	}, opts...)

	return extras.NewStructuredLead(build, structured, fallback, leadOpts...)
}

// MarkdownBody returns a body renderer that resolves the dotted path through
// the locale chain and renders the markdown it finds. Unresolved paths yield
// an empty body, never an error.
func (m *Module) MarkdownBody(path string) composer.BodyFunc {
	return func(ctx *reqctx.Context) (string, error) {
		resolver, err := m.requireStarted()
		if err != nil {
			return "", err
		}
		if ctx == nil {
			return "", nil
		}

		value, ok := resolver.ResolveFor(ctx.Locale, ctx.Locale, ctx.ContentKey, path)
		if !ok {
			return "", nil
		}

		body := value.String()
		if m.markdown == nil {
			return body, nil
		}
		return m.markdown.RenderString(body)
	}
}

func (m *Module) requireStarted() (*i18n.Resolver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.started || m.resolver == nil {
		return nil, ErrNotStarted
	}
	return m.resolver, nil
}

func buildComposer(cfg Config, provider interfaces.LoggerProvider) *composer.Composer {
	opts := []composer.Option{
		composer.WithLogger(logging.ComposerLogger(provider)),
	}

	if cfg.Navigation.RouteConfig != nil {
		manager := urlkit.NewRouteManager(cfg.Navigation.RouteConfig)
		links := cfg.Navigation.Links
		opts = append(opts, composer.WithLinkBuilder(composer.NewLinkBuilder(composer.LinkBuilderOptions{
			Manager:          manager,
			DefaultGroup:     links.DefaultGroup,
			LocaleGroups:     links.LocaleGroups,
			DefaultRoute:     links.DefaultRoute,
			SlugParam:        links.SlugParam,
			LocaleParam:      links.LocaleParam,
			AlternateLocales: alternateLocales(cfg, links.AlternateLocales),
		})))
	}

	return composer.New(opts...)
}

// alternateLocales falls back to the configured locale list when the link
// builder does not name its own set.
func alternateLocales(cfg Config, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	return cfg.I18N.Locales
}

func buildLoggerProvider(cfg Config, override interfaces.LoggerProvider) (interfaces.LoggerProvider, error) {
	if override != nil {
		return override, nil
	}
	if !cfg.Features.Logger {
		return nil, nil
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Logging.Provider), "gologger") {
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	}
	return nil, nil
}

// wrapStartupError tags fatal startup failures with a validation category so
// hosts can branch on category and text code. Already-wrapped errors pass
// through untouched.
func wrapStartupError(err error, msg, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).WithTextCode(code)
}
