package guidecontent

import (
	"fmt"
	"regexp"
	"strings"
)

// anchorPattern constrains ToC hrefs to "#" followed by word characters and
// hyphens. Anything else is rejected, not repaired.
var anchorPattern = regexp.MustCompile(`^#[\w-]+$`)

// NormalizeToc canonicalizes the table of contents. Explicit {href,label}
// pairs win; when absent the list derives from the normalized sections.
// Duplicate hrefs keep the first occurrence. The FAQ anchor is appended iff
// at least one FAQ survived normalization, and stripped when none did.
func NormalizeToc(raw any, sections []Section, faqs []Faq) []TocItem {
	items := explicitTocItems(raw)
	if len(items) == 0 {
		items = derivedTocItems(sections)
	}

	out := make([]TocItem, 0, len(items)+1)
	seen := map[string]struct{}{}
	for _, item := range items {
		if item.Href == FaqAnchor {
			// FAQ anchor presence is governed by the faqs list alone.
			continue
		}
		if !anchorPattern.MatchString(item.Href) {
			continue
		}
		if _, dup := seen[item.Href]; dup {
			continue
		}
		seen[item.Href] = struct{}{}
		out = append(out, item)
	}

	if len(faqs) > 0 {
		out = append(out, TocItem{Href: FaqAnchor, Label: "FAQs"})
	}
	return out
}

func explicitTocItems(raw any) []TocItem {
	switch typed := raw.(type) {
	case nil:
		return nil
	case []TocItem:
		return typed
	case []any:
		out := make([]TocItem, 0, len(typed))
		for _, item := range typed {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}
			href := firstString(fields, "href", "anchor", "target")
			label := firstString(fields, "label", "title", "text")
			if href == "" || label == "" {
				continue
			}
			out = append(out, TocItem{Href: href, Label: label})
		}
		return out
	case []map[string]any:
		anyItems := make([]any, len(typed))
		for i, fields := range typed {
			anyItems[i] = fields
		}
		return explicitTocItems(anyItems)
	default:
		return nil
	}
}

func derivedTocItems(sections []Section) []TocItem {
	out := make([]TocItem, 0, len(sections))
	for i, section := range sections {
		if !section.IncludeInToc {
			continue
		}
		label := strings.TrimSpace(section.Title)
		if label == "" {
			label = fmt.Sprintf("Section %d", i+1)
		}
		out = append(out, TocItem{
			Href:  "#" + section.ID,
			Label: label,
		})
	}
	return out
}
