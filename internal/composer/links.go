package composer

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// LinkBuilderOptions configures the go-urlkit backed link builder.
type LinkBuilderOptions struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	LocaleGroups map[string]string
	DefaultRoute string
	SlugParam    string
	LocaleParam  string

	// AlternateLocales lists every locale an alternate link is emitted for.
	AlternateLocales []string
}

// LinkBuilder produces canonical and alternate-locale link descriptors using
// a go-urlkit RouteManager. Route groups are resolved per locale, so hosts
// can mount localized guide trees under distinct prefixes.
type LinkBuilder struct {
	manager *urlkit.RouteManager

	defaultGroup string
	localeGroups map[string]string

	defaultRoute string
	slugParam    string
	localeParam  string

	alternateLocales []string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewLinkBuilder constructs a link builder backed by go-urlkit.
func NewLinkBuilder(opts LinkBuilderOptions) *LinkBuilder {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}

	return &LinkBuilder{
		manager: opts.Manager,

		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		localeGroups: opts.LocaleGroups,

		defaultRoute: strings.TrimSpace(opts.DefaultRoute),
		slugParam:    opts.SlugParam,
		localeParam:  strings.TrimSpace(opts.LocaleParam),

		alternateLocales: append([]string(nil), opts.AlternateLocales...),

		groupCache: make(map[string]*urlkit.Group),
	}
}

// Canonical builds the canonical URL for the given locale, route, and slug.
func (b *LinkBuilder) Canonical(locale, route, slug string) (string, error) {
	if b == nil || b.manager == nil {
		return "", nil
	}
	return b.buildURL(locale, route, slug)
}

// Build returns the full link set for one request: a rel=canonical link for
// the active locale plus rel=alternate links with hreflang for every other
// configured locale that resolves.
func (b *LinkBuilder) Build(locale, route, slug string) ([]Link, error) {
	if b == nil || b.manager == nil {
		return nil, nil
	}

	canonical, err := b.buildURL(locale, route, slug)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, 1+len(b.alternateLocales))
	if canonical != "" {
		links = append(links, Link{Rel: "canonical", Href: canonical})
	}

	active := normalizeLocaleKey(locale)
	for _, alt := range b.alternateLocales {
		key := normalizeLocaleKey(alt)
		if key == "" || key == active {
			continue
		}
		href, err := b.buildURL(alt, route, slug)
		if err != nil || href == "" {
			continue
		}
		links = append(links, Link{Rel: "alternate", Href: href, Hreflang: key})
	}

	return links, nil
}

func (b *LinkBuilder) buildURL(locale, route, slug string) (string, error) {
	groupPath := b.defaultGroup
	localeKey := normalizeLocaleKey(locale)
	if b.localeGroups != nil {
		if path, ok := b.localeGroups[localeKey]; ok && strings.TrimSpace(path) != "" {
			groupPath = strings.TrimSpace(path)
		}
	}
	if groupPath == "" {
		return "", nil
	}

	group, err := b.groupForPath(groupPath)
	if err != nil || group == nil {
		return "", err
	}

	routeName := strings.TrimSpace(route)
	if routeName == "" {
		routeName = b.defaultRoute
	}
	if routeName == "" {
		return "", nil
	}

	builder, err := b.safeBuilder(group, routeName)
	if err != nil {
		return "", err
	}

	if b.slugParam != "" && slug != "" {
		builder.WithParam(b.slugParam, slug)
	}
	if b.localeParam != "" && localeKey != "" {
		builder.WithParam(b.localeParam, localeKey)
	}

	return builder.Build()
}

func (b *LinkBuilder) groupForPath(path string) (*urlkit.Group, error) {
	b.mu.RLock()
	group, ok := b.groupCache[path]
	b.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("composer: invalid route group path %q", path)
	}

	root, err := lookupGroup(b.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	b.groupCache[path] = current
	b.mu.Unlock()
	return current, nil
}

// safeBuilder shields callers from urlkit's panic on unknown route names.
func (b *LinkBuilder) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("composer: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("composer: route %q not registered: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("composer: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("composer: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("composer: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("composer: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}

func normalizeLocaleKey(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
