package composer

import (
	"errors"

	"github.com/goliatone/go-guides/internal/logging"
	"github.com/goliatone/go-guides/internal/manifest"
	"github.com/goliatone/go-guides/internal/reqctx"
	"github.com/goliatone/go-guides/pkg/interfaces"
)

var (
	ErrEntryRequired = errors.New("composer: manifest entry is required")
	ErrBodyRequired  = errors.New("composer: composed definition has no body renderer")
)

// Manifest option names recognized as the middle merge layer. Flags sit at
// the top level of Entry.Options; bags are nested maps of booleans.
const (
	optionShowPlanChoice              = "showPlanChoice"
	optionSuppressUnlocalizedFallback = "suppressUnlocalizedFallback"
	optionPreferManualWhenUnlocalized = "preferManualWhenUnlocalized"

	optionGenericContentBag = "genericContentOptions"
	optionRelatedItemsBag   = "relatedItemsOptions"
	optionAlsoHelpfulBag    = "alsoHelpfulOptions"
)

// Composer builds page definitions. It carries the link builder and logger
// shared by every composed route.
type Composer struct {
	links  *LinkBuilder
	logger interfaces.Logger
}

// Option customizes composer construction.
type Option func(*Composer)

// WithLinkBuilder installs the urlkit-backed link builder used by composed
// definitions.
func WithLinkBuilder(links *LinkBuilder) Option {
	return func(c *Composer) {
		c.links = links
	}
}

// WithLogger attaches a logger for composition diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a composer.
func New(opts ...Option) *Composer {
	c := &Composer{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose merges the base template, the entry's manifest options, and the
// override fragment into a page definition. Top-level fields merge shallowly
// with the override winning ties; the three option bags merge key by key so
// sibling flags survive a single-key override. Precedence is
// base < manifest options < override.
func (c *Composer) Compose(entry *manifest.Entry, base Template, override Fragment) (*PageDefinition, error) {
	if entry == nil {
		return nil, ErrEntryRequired
	}

	resolved := mergeTemplates(entry, base, override)
	if resolved.Body == nil {
		return nil, ErrBodyRequired
	}

	def := &PageDefinition{
		Key:  entry.Key,
		Slug: entry.Slug,

		Body:   resolved.Body,
		Loader: resolved.Loader,

		ShowPlanChoice:              flagValue(resolved.ShowPlanChoice, false),
		SuppressUnlocalizedFallback: flagValue(resolved.SuppressUnlocalizedFallback, false),
		PreferManualWhenUnlocalized: flagValue(resolved.PreferManualWhenUnlocalized, false),

		GenericContent: resolved.GenericContent,
		RelatedItems:   resolved.RelatedItems,
		AlsoHelpful:    resolved.AlsoHelpful,
	}

	def.Metadata = c.metadataFunc(entry, resolved)
	def.Links = c.linksFunc(entry, resolved)

	c.logger.Debug("composed page definition",
		"content_key", entry.Key.String(),
		"slug", entry.Slug,
		"canonical_route", resolved.CanonicalRoute,
	)

	return def, nil
}

// metadataFunc captures the resolved template once; the returned function is
// pure per request.
func (c *Composer) metadataFunc(entry *manifest.Entry, resolved Template) MetadataFunc {
	structuredTypes := append([]string(nil), entry.StructuredDataTypes...)
	titleKey := resolved.TitleKey
	descriptionKey := resolved.DescriptionKey
	route := resolved.CanonicalRoute
	slug := entry.Slug
	links := c.links

	return func(ctx *reqctx.Context) Metadata {
		meta := Metadata{
			TitleKey:            titleKey,
			DescriptionKey:      descriptionKey,
			StructuredDataTypes: append([]string(nil), structuredTypes...),
		}
		if links != nil && ctx != nil {
			if href, err := links.Canonical(ctx.Locale, route, slug); err == nil {
				meta.Canonical = href
			}
		}
		return meta
	}
}

func (c *Composer) linksFunc(entry *manifest.Entry, resolved Template) LinksFunc {
	route := resolved.CanonicalRoute
	slug := entry.Slug
	links := c.links
	logger := c.logger

	return func(ctx *reqctx.Context) []Link {
		if links == nil || ctx == nil {
			return nil
		}
		built, err := links.Build(ctx.Locale, route, slug)
		if err != nil {
			logger.Warn("link build failed",
				"content_key", string(ctx.ContentKey),
				"route", route,
				"error", err,
			)
			return nil
		}
		return built
	}
}

// mergeTemplates applies the three merge layers. Only the enumerated bag
// fields deep-merge; everything else is shallow replacement.
func mergeTemplates(entry *manifest.Entry, base Template, override Fragment) Template {
	out := base

	out.GenericContent = base.GenericContent.Clone()
	out.RelatedItems = base.RelatedItems.Clone()
	out.AlsoHelpful = base.AlsoHelpful.Clone()

	// Manifest layer.
	out.ShowPlanChoice = mergeFlag(out.ShowPlanChoice, manifestFlag(entry, optionShowPlanChoice))
	out.SuppressUnlocalizedFallback = mergeFlag(out.SuppressUnlocalizedFallback, manifestFlag(entry, optionSuppressUnlocalizedFallback))
	out.PreferManualWhenUnlocalized = mergeFlag(out.PreferManualWhenUnlocalized, manifestFlag(entry, optionPreferManualWhenUnlocalized))

	out.GenericContent = mergeBag(out.GenericContent, manifestBag(entry, optionGenericContentBag))
	out.RelatedItems = mergeBag(out.RelatedItems, manifestBag(entry, optionRelatedItemsBag))
	out.AlsoHelpful = mergeBag(out.AlsoHelpful, manifestBag(entry, optionAlsoHelpfulBag))

	// Override layer wins every tie.
	if override.TitleKey != "" {
		out.TitleKey = override.TitleKey
	}
	if override.DescriptionKey != "" {
		out.DescriptionKey = override.DescriptionKey
	}
	if override.CanonicalRoute != "" {
		out.CanonicalRoute = override.CanonicalRoute
	}
	out.ShowPlanChoice = mergeFlag(out.ShowPlanChoice, override.ShowPlanChoice)
	out.SuppressUnlocalizedFallback = mergeFlag(out.SuppressUnlocalizedFallback, override.SuppressUnlocalizedFallback)
	out.PreferManualWhenUnlocalized = mergeFlag(out.PreferManualWhenUnlocalized, override.PreferManualWhenUnlocalized)

	out.GenericContent = mergeBag(out.GenericContent, override.GenericContent)
	out.RelatedItems = mergeBag(out.RelatedItems, override.RelatedItems)
	out.AlsoHelpful = mergeBag(out.AlsoHelpful, override.AlsoHelpful)

	if override.Body != nil {
		out.Body = override.Body
	}
	if override.Loader != nil {
		out.Loader = override.Loader
	}

	return out
}

func mergeFlag(current, next *bool) *bool {
	if next != nil {
		return next
	}
	return current
}

// mergeBag overlays next onto current key by key, leaving current untouched
// when next has nothing to add.
func mergeBag(current, next OptionBag) OptionBag {
	if len(next) == 0 {
		return current
	}
	merged := current.Clone()
	if merged == nil {
		merged = make(OptionBag, len(next))
	}
	for k, v := range next {
		merged[k] = v
	}
	return merged
}

func manifestFlag(entry *manifest.Entry, name string) *bool {
	if entry == nil || entry.Options == nil {
		return nil
	}
	raw, ok := entry.Options[name]
	if !ok {
		return nil
	}
	value, ok := raw.(bool)
	if !ok {
		return nil
	}
	return &value
}

// manifestBag reads a nested boolean map off the entry options. Non-boolean
// values are skipped, matching the normalizers' drop-silently posture.
func manifestBag(entry *manifest.Entry, name string) OptionBag {
	if entry == nil || entry.Options == nil {
		return nil
	}
	raw, ok := entry.Options[name]
	if !ok {
		return nil
	}
	nested, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	bag := make(OptionBag, len(nested))
	for k, v := range nested {
		if b, ok := v.(bool); ok {
			bag[k] = b
		}
	}
	if len(bag) == 0 {
		return nil
	}
	return bag
}

func flagValue(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}
