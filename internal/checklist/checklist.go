package checklist

import (
	"strings"

	"github.com/goliatone/go-guides/internal/manifest"
)

// ItemStatus tracks the progress of one editorial checklist dimension.
type ItemStatus string

const (
	StatusMissing    ItemStatus = "missing"
	StatusInProgress ItemStatus = "in_progress"
	StatusComplete   ItemStatus = "complete"
)

// ItemTranslations is the checklist id adjusted by the locale-aware pass.
const ItemTranslations = "translations"

// ItemContent is the checklist id that defaults to in-progress instead of missing.
const ItemContent = "content"

// FallbackNote is attached when a previously complete translations item is
// downgraded because the active locale is serving fallback content.
const FallbackNote = "active-locale-fallback"

// Item is one checklist dimension with its current status.
type Item struct {
	ID     string
	Status ItemStatus
	Note   string
}

// Snapshot is the derived completeness state for one manifest entry. It is
// recomputed on demand and never stored.
type Snapshot struct {
	Status manifest.Status
	Items  []Item
}

// Build derives the checklist snapshot for an entry. Every fixed item id is
// present exactly once, in canonical order: items default to missing except
// the content item, which defaults to in-progress; per-entry overrides apply
// on top.
func Build(entry *manifest.Entry) Snapshot {
	snapshot := Snapshot{}
	if entry == nil {
		return snapshot
	}
	snapshot.Status = entry.Status
	snapshot.Items = make([]Item, 0, len(manifest.ChecklistItemIDs))

	overrides := indexOverrides(entry.ChecklistOverrides)
	for _, id := range manifest.ChecklistItemIDs {
		item := Item{ID: id, Status: StatusMissing}
		if id == ItemContent {
			item.Status = StatusInProgress
		}
		if override, ok := overrides[id]; ok {
			if status := normalizeStatus(override.Status); status != "" {
				item.Status = status
			}
			if note := strings.TrimSpace(override.Note); note != "" {
				item.Note = note
			}
		}
		snapshot.Items = append(snapshot.Items, item)
	}
	return snapshot
}

// ApplyLocaleAwareTranslations adjusts the translations item for the active
// locale. When localized content exists the item is forced complete; when it
// does not, a previously complete item is downgraded to in-progress with an
// advisory note. The transform is referentially transparent: when no item
// changes, the input snapshot is returned as-is, same backing array included.
func ApplyLocaleAwareTranslations(snapshot Snapshot, hasLocalizedContent bool) Snapshot {
	index := -1
	for i, item := range snapshot.Items {
		if item.ID != ItemTranslations {
			continue
		}
		index = i
		break
	}
	if index < 0 {
		return snapshot
	}

	current := snapshot.Items[index]
	updated := current
	if hasLocalizedContent {
		updated.Status = StatusComplete
		updated.Note = ""
	} else if current.Status == StatusComplete {
		updated.Status = StatusInProgress
		updated.Note = FallbackNote
	}

	if updated == current {
		return snapshot
	}

	items := append([]Item(nil), snapshot.Items...)
	items[index] = updated
	return Snapshot{Status: snapshot.Status, Items: items}
}

// Find returns the item with the given id, if present.
func (s Snapshot) Find(id string) (Item, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Complete reports whether every checklist item is complete.
func (s Snapshot) Complete() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, item := range s.Items {
		if item.Status != StatusComplete {
			return false
		}
	}
	return true
}

func indexOverrides(overrides []manifest.ChecklistOverride) map[string]manifest.ChecklistOverride {
	if len(overrides) == 0 {
		return nil
	}
	out := make(map[string]manifest.ChecklistOverride, len(overrides))
	for _, override := range overrides {
		id := strings.ToLower(strings.TrimSpace(override.ItemID))
		if id == "" {
			continue
		}
		out[id] = override
	}
	return out
}

func normalizeStatus(raw string) ItemStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusMissing):
		return StatusMissing
	case string(StatusInProgress):
		return StatusInProgress
	case string(StatusComplete):
		return StatusComplete
	default:
		return ""
	}
}
