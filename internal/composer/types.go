// Package composer merges manifest-derived base templates with caller
// override fragments into immutable page definitions. Composition runs once
// per route registration; the resulting definition is reused across requests.
package composer

import (
	"context"

	"github.com/goliatone/go-guides/internal/manifest"
	"github.com/goliatone/go-guides/internal/reqctx"
)

// OptionBag is a flat set of named boolean options. The three bags on a
// template merge key by key, so overriding one flag never discards siblings.
type OptionBag map[string]bool

// Clone returns an independent copy of the bag.
func (b OptionBag) Clone() OptionBag {
	if b == nil {
		return nil
	}
	out := make(OptionBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Enabled reads a flag, returning the fallback when absent.
func (b OptionBag) Enabled(name string, fallback bool) bool {
	if b == nil {
		return fallback
	}
	if v, ok := b[name]; ok {
		return v
	}
	return fallback
}

// BodyFunc renders the page body for one request.
type BodyFunc func(*reqctx.Context) (string, error)

// LoaderFunc runs before rendering, typically to warm localized content.
type LoaderFunc func(context.Context, *reqctx.Context) error

// Template is the manifest-derived base shape of a guide page. Metadata
// fields hold translation keys, never literal strings; the rendering layer
// resolves them per locale. Pointer flags distinguish "unset" from "false"
// so later merge layers only win when they actually carry a value.
type Template struct {
	TitleKey       string
	DescriptionKey string
	CanonicalRoute string

	ShowPlanChoice              *bool
	SuppressUnlocalizedFallback *bool
	PreferManualWhenUnlocalized *bool

	GenericContent OptionBag
	RelatedItems   OptionBag
	AlsoHelpful    OptionBag

	Body   BodyFunc
	Loader LoaderFunc
}

// Fragment is a partial template supplied by the route registration call.
// Set fields replace the base shallowly; the three option bags merge key by
// key instead.
type Fragment = Template

// Metadata is the per-request metadata payload exposed to the rendering
// layer. Title and description stay translation keys.
type Metadata struct {
	TitleKey            string
	DescriptionKey      string
	Canonical           string
	StructuredDataTypes []string
}

// Link is one link descriptor emitted by the link builder.
type Link struct {
	Rel      string
	Href     string
	Hreflang string
}

// MetadataFunc builds metadata for one request.
type MetadataFunc func(*reqctx.Context) Metadata

// LinksFunc builds the canonical and alternate-locale link set for one
// request.
type LinksFunc func(*reqctx.Context) []Link

// PageDefinition is the composer's output: pure per-request functions plus
// the fully resolved flags and option bags. Built once, never mutated, safe
// for unlimited concurrent readers.
type PageDefinition struct {
	Key  manifest.Key
	Slug string

	Metadata MetadataFunc
	Links    LinksFunc
	Body     BodyFunc
	Loader   LoaderFunc

	ShowPlanChoice              bool
	SuppressUnlocalizedFallback bool
	PreferManualWhenUnlocalized bool

	GenericContent OptionBag
	RelatedItems   OptionBag
	AlsoHelpful    OptionBag
}

// Flag is a convenience for building pointer flags on templates.
func Flag(v bool) *bool { return &v }
