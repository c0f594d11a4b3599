package guidecontent

import (
	"path"
	"strings"
)

// NormalizeMedia canonicalizes gallery and media descriptors. Entries without
// a usable URL are dropped; kind is inferred from the file extension when the
// author did not declare one.
func NormalizeMedia(raw any) []Media {
	candidates := mediaCandidates(raw)
	out := make([]Media, 0, len(candidates))
	position := 0

	for _, fields := range candidates {
		media, ok := normalizeMediaEntry(fields, position)
		if !ok {
			continue
		}
		position++
		out = append(out, media)
	}
	return out
}

func mediaCandidates(raw any) []map[string]any {
	switch typed := raw.(type) {
	case nil:
		return nil
	case []Media:
		out := make([]map[string]any, 0, len(typed))
		for _, media := range typed {
			out = append(out, map[string]any{
				"id":      media.ID,
				"url":     media.URL,
				"alt":     media.Alt,
				"caption": media.Caption,
				"kind":    media.Kind,
			})
		}
		return out
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			if fields, ok := item.(map[string]any); ok {
				out = append(out, fields)
			}
		}
		return out
	case []map[string]any:
		return typed
	default:
		return nil
	}
}

func normalizeMediaEntry(fields map[string]any, position int) (Media, bool) {
	if fields == nil {
		return Media{}, false
	}

	url := firstString(fields, "url", "src", "source", "href")
	if url == "" {
		return Media{}, false
	}

	id := firstString(fields, "id", "key")
	if id == "" {
		id = synthesizeSectionID(firstString(fields, "alt", "label", "caption"), position)
	}

	kind := strings.ToLower(firstString(fields, "kind", "type"))
	if kind == "" {
		kind = inferMediaKind(url)
	}

	return Media{
		ID:      normalizeAnchorID(id),
		URL:     url,
		Alt:     firstString(fields, "alt", "label"),
		Caption: firstString(fields, "caption", "description"),
		Kind:    kind,
	}, true
}

func inferMediaKind(url string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(url), ".")) {
	case "png", "jpg", "jpeg", "gif", "webp", "svg", "avif":
		return "image"
	case "mp4", "webm", "mov":
		return "video"
	case "mp3", "ogg", "wav":
		return "audio"
	default:
		return "file"
	}
}
