package manifest

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-guides/internal/identity"
)

// Key is the opaque, stable identifier for one guide's content bundle. It is
// immutable once assigned and doubles as the registry primary key.
type Key string

// String returns the raw key text.
func (k Key) String() string { return string(k) }

// IsZero reports whether the key is empty after trimming.
func (k Key) IsZero() bool { return strings.TrimSpace(string(k)) == "" }

// Status captures the editorial lifecycle of a guide.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReview    Status = "review"
	StatusPublished Status = "published"
)

// NormalizeStatus maps free-form status text onto the known set, defaulting
// to draft.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusReview):
		return StatusReview
	case string(StatusPublished):
		return StatusPublished
	default:
		return StatusDraft
	}
}

// Area labels the topical area a guide belongs to (e.g. billing, onboarding).
type Area string

// BlockDeclaration names one ordered content block on a guide page. Ref is
// optional and, when set, must resolve to another registry entry.
type BlockDeclaration struct {
	Type    string
	Ref     Key
	Options map[string]any
}

// ChecklistOverride sets a non-default initial status or note for one of the
// fixed checklist item ids. Overrides may not introduce new ids.
type ChecklistOverride struct {
	ItemID string
	Status string
	Note   string
}

// Entry is one manifest record. Entries are created from a static seed list
// at process start and are read-only afterwards.
type Entry struct {
	Key                 Key
	Slug                string
	Status              Status
	Areas               []Area
	PrimaryArea         Area
	StructuredDataTypes []string
	RelatedKeys         []Key
	Blocks              []BlockDeclaration
	Options             map[string]any
	ChecklistOverrides  []ChecklistOverride
}

// ID returns the deterministic identifier derived from the entry key.
func (e *Entry) ID() uuid.UUID {
	if e == nil {
		return uuid.Nil
	}
	return identity.EntryUUID(string(e.Key))
}

// HasArea reports whether the entry is assigned to the given area.
func (e *Entry) HasArea(area Area) bool {
	if e == nil {
		return false
	}
	for _, a := range e.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// BoolOption reads a boolean option, returning the fallback when the option
// is absent or not a bool.
func (e *Entry) BoolOption(name string, fallback bool) bool {
	if e == nil || e.Options == nil {
		return fallback
	}
	raw, ok := e.Options[name]
	if !ok {
		return fallback
	}
	value, ok := raw.(bool)
	if !ok {
		return fallback
	}
	return value
}

func cloneEntry(src *Entry) *Entry {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Areas = append([]Area(nil), src.Areas...)
	copied.StructuredDataTypes = append([]string(nil), src.StructuredDataTypes...)
	copied.RelatedKeys = append([]Key(nil), src.RelatedKeys...)
	copied.ChecklistOverrides = append([]ChecklistOverride(nil), src.ChecklistOverrides...)

	if len(src.Blocks) > 0 {
		copied.Blocks = make([]BlockDeclaration, len(src.Blocks))
		for i, block := range src.Blocks {
			copied.Blocks[i] = block
			copied.Blocks[i].Options = cloneAnyMap(block.Options)
		}
	}

	copied.Options = cloneAnyMap(src.Options)
	return &copied
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
