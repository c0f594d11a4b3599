package guidecontent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
)

// sectionBodyFields are probed in order when collecting body text. Authors
// use any of these names interchangeably.
var sectionBodyFields = []string{"body", "paragraphs", "items", "text", "content"}

// NormalizeSections canonicalizes sections authored as either an ordered list
// of records or a keyed map. List order is preserved; map-shaped input is
// ordered by sorted key so repeated calls agree. Entries with no title and no
// body are dropped.
func NormalizeSections(raw any) []Section {
	candidates := sectionCandidates(raw)
	out := make([]Section, 0, len(candidates))
	position := 0

	for _, candidate := range candidates {
		section, ok := normalizeSection(candidate.id, candidate.fields, position)
		if !ok {
			continue
		}
		position++
		out = append(out, section)
	}
	return out
}

type sectionCandidate struct {
	id     string
	fields map[string]any
}

func sectionCandidates(raw any) []sectionCandidate {
	switch typed := raw.(type) {
	case nil:
		return nil
	case []Section:
		// Already normalized; re-wrap so normalization stays idempotent.
		out := make([]sectionCandidate, 0, len(typed))
		for _, section := range typed {
			out = append(out, sectionCandidate{id: section.ID, fields: map[string]any{
				"title":        section.Title,
				"body":         section.Body,
				"includeInToc": section.IncludeInToc,
			}})
		}
		return out
	case []any:
		out := make([]sectionCandidate, 0, len(typed))
		for _, item := range typed {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, sectionCandidate{fields: fields})
		}
		return out
	case []map[string]any:
		out := make([]sectionCandidate, 0, len(typed))
		for _, fields := range typed {
			out = append(out, sectionCandidate{fields: fields})
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := make([]sectionCandidate, 0, len(typed))
		for _, key := range keys {
			fields, ok := typed[key].(map[string]any)
			if !ok {
				continue
			}
			out = append(out, sectionCandidate{id: key, fields: fields})
		}
		return out
	default:
		return nil
	}
}

func normalizeSection(mapKey string, fields map[string]any, position int) (Section, bool) {
	if fields == nil {
		return Section{}, false
	}

	title := firstString(fields, "title", "heading", "label", "name")
	body := collectBody(fields)
	if title == "" && len(body) == 0 {
		return Section{}, false
	}

	id := firstString(fields, "id", "anchor", "key")
	if id == "" {
		id = strings.TrimSpace(mapKey)
	}
	if id == "" {
		id = synthesizeSectionID(title, position)
	}
	id = normalizeAnchorID(id)

	include := true
	if raw, ok := fields["includeInToc"]; ok {
		if flag, isBool := raw.(bool); isBool {
			include = flag
		}
	}

	return Section{
		ID:           id,
		Title:        title,
		Body:         body,
		IncludeInToc: include,
	}, true
}

// collectBody concatenates every body-style field in canonical field order,
// flattening scalars and lists into one ordered list of trimmed strings.
func collectBody(fields map[string]any) []string {
	out := make([]string, 0, 4)
	for _, name := range sectionBodyFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		out = appendStrings(out, raw)
	}
	return out
}

func appendStrings(dst []string, raw any) []string {
	switch typed := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			dst = append(dst, trimmed)
		}
	case []string:
		for _, item := range typed {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				dst = append(dst, trimmed)
			}
		}
	case []any:
		for _, item := range typed {
			dst = appendStrings(dst, item)
		}
	}
	return dst
}

func synthesizeSectionID(title string, position int) string {
	if strings.TrimSpace(title) != "" {
		if normalized, err := slug.Normalize(title); err == nil && normalized != "" {
			return normalized
		}
	}
	return fmt.Sprintf("section-%d", position+1)
}

// normalizeAnchorID keeps ids anchor-safe: lowercased, word characters and
// hyphens only. Invalid ids are re-slugged rather than rejected.
func normalizeAnchorID(id string) string {
	id = strings.TrimSpace(id)
	if slug.IsValid(id) {
		return id
	}
	if normalized, err := slug.Normalize(id); err == nil && normalized != "" {
		return normalized
	}
	return id
}

func firstString(fields map[string]any, names ...string) string {
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		if str, isString := raw.(string); isString {
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
