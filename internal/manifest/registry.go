package manifest

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-guides/internal/logging"
	"github.com/goliatone/go-guides/pkg/interfaces"
)

// ChecklistItemIDs enumerates the fixed editorial checklist dimensions every
// entry is tracked against. Overrides may only target ids from this set.
var ChecklistItemIDs = []string{
	"translations",
	"content",
	"media",
	"jsonld",
	"faqs",
}

// IsChecklistItemID reports whether the id belongs to the fixed checklist set.
func IsChecklistItemID(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, known := range ChecklistItemIDs {
		if id == known {
			return true
		}
	}
	return false
}

// Registry is the immutable lookup table of manifest entries. It is built
// once from a static seed list, validated eagerly, and safe for unlimited
// concurrent readers afterwards.
type Registry struct {
	entries map[Key]*Entry
	order   []Key
	logger  interfaces.Logger
}

// Option customizes registry construction.
type Option func(*Registry)

// WithLogger attaches a logger used during construction diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry validates the seed list and builds the lookup table. Any
// duplicate key, invalid entry, or reference to a nonexistent key is fatal:
// the registry refuses to construct and the process must not start serving.
func NewRegistry(seed []Entry, opts ...Option) (*Registry, error) {
	registry := &Registry{
		entries: make(map[Key]*Entry, len(seed)),
		order:   make([]Key, 0, len(seed)),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(registry)
	}

	if len(seed) == 0 {
		return nil, wrapSeedError(ErrSeedRequired)
	}

	for i := range seed {
		entry := cloneEntry(&seed[i])
		entry.Status = NormalizeStatus(string(entry.Status))

		if err := validateEntry(entry); err != nil {
			return nil, wrapSeedError(fmt.Errorf("entry %q: %w", entry.Key, err))
		}
		if _, exists := registry.entries[entry.Key]; exists {
			return nil, wrapSeedError(fmt.Errorf("%w: %q", ErrDuplicateKey, entry.Key))
		}

		registry.entries[entry.Key] = entry
		registry.order = append(registry.order, entry.Key)
		registry.logger.Trace("manifest entry registered",
			"entry_id", entry.ID().String(),
			"content_key", string(entry.Key))
	}

	if err := registry.validateReferences(); err != nil {
		return nil, wrapSeedError(err)
	}

	registry.logger.Debug("manifest registry built", "entries", len(registry.order))
	return registry, nil
}

// Get returns a copy of the entry stored under key.
func (r *Registry) Get(key Key) (*Entry, error) {
	entry, ok := r.entries[key]
	if !ok {
		return nil, &NotFoundError{Resource: "entry", Key: string(key)}
	}
	return cloneEntry(entry), nil
}

// Has reports whether the key exists without copying the entry.
func (r *Registry) Has(key Key) bool {
	_, ok := r.entries[key]
	return ok
}

// List returns all entries in seed order.
func (r *Registry) List() []*Entry {
	out := make([]*Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, cloneEntry(r.entries[key]))
	}
	return out
}

// Keys returns the registry keys in seed order.
func (r *Registry) Keys() []Key {
	return append([]Key(nil), r.order...)
}

// Len reports the number of registered entries.
func (r *Registry) Len() int {
	return len(r.order)
}

func validateEntry(entry *Entry) error {
	err := validation.ValidateStruct(entry,
		validation.Field(&entry.Key, validation.By(func(value any) error {
			if key, ok := value.(Key); !ok || key.IsZero() {
				return validation.NewError("guides.manifest.key_required", ErrKeyRequired.Error())
			}
			return nil
		})),
		validation.Field(&entry.Slug, validation.Required.Error(ErrSlugRequired.Error()), validation.By(func(value any) error {
			raw, _ := value.(string)
			if strings.TrimSpace(raw) == "" {
				return validation.NewError("guides.manifest.slug_required", ErrSlugRequired.Error())
			}
			if !slug.IsValid(raw) {
				return validation.NewError("guides.manifest.slug_invalid", ErrSlugInvalid.Error())
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}

	if entry.PrimaryArea != "" && !entry.HasArea(entry.PrimaryArea) {
		return fmt.Errorf("%w: %q", ErrPrimaryAreaNotMember, entry.PrimaryArea)
	}
	if entry.PrimaryArea == "" && len(entry.Areas) > 0 {
		return fmt.Errorf("%w: primary area missing", ErrPrimaryAreaNotMember)
	}

	for _, structured := range entry.StructuredDataTypes {
		if strings.TrimSpace(structured) == "" {
			return ErrStructuredTypeEmpty
		}
	}

	for _, override := range entry.ChecklistOverrides {
		if !IsChecklistItemID(override.ItemID) {
			return fmt.Errorf("%w: %q", ErrUnknownChecklistItem, override.ItemID)
		}
		if !isOverrideStatus(override.Status) {
			return fmt.Errorf("%w: %q", ErrChecklistStatusInvalid, override.Status)
		}
	}

	for _, block := range entry.Blocks {
		if strings.TrimSpace(block.Type) == "" {
			return ErrBlockTypeRequired
		}
	}

	for _, related := range entry.RelatedKeys {
		if related == entry.Key {
			return fmt.Errorf("%w: %q", ErrRelatedKeySelfReference, related)
		}
	}

	return nil
}

func isOverrideStatus(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "missing", "in_progress", "complete":
		return true
	default:
		return false
	}
}

// validateReferences confirms every cross-entry reference resolves. Related
// guide lists and block refs naming other keys must all exist.
func (r *Registry) validateReferences() error {
	for _, key := range r.order {
		entry := r.entries[key]
		for _, related := range entry.RelatedKeys {
			if _, ok := r.entries[related]; !ok {
				return fmt.Errorf("entry %q: %w: %q", key, ErrDanglingRelatedKey, related)
			}
		}
		for _, block := range entry.Blocks {
			if block.Ref.IsZero() {
				continue
			}
			if _, ok := r.entries[block.Ref]; !ok {
				return fmt.Errorf("entry %q: %w: %q", key, ErrDanglingBlockRef, block.Ref)
			}
		}
	}
	return nil
}
