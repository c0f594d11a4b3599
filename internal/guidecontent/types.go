// Package guidecontent canonicalizes hand-authored guide content. Authored
// shapes drift (arrays vs maps, singular vs plural field names, inconsistent
// id/label naming), so every normalizer here accepts arbitrary input and
// produces canonical records, silently dropping whatever cannot be salvaged.
// All normalizers are pure, total, and idempotent.
package guidecontent

// Section is one canonical article section.
type Section struct {
	ID           string
	Title        string
	Body         []string
	IncludeInToc bool
}

// Faq is one canonical question/answer pair. Answers are always a flat,
// ordered list of non-empty strings.
type Faq struct {
	Question string
	Answers  []string
}

// TocItem is one table-of-contents anchor.
type TocItem struct {
	Href  string
	Label string
}

// FaqAnchor is the ToC href reserved for the FAQ block. It is present in a
// normalized ToC iff at least one FAQ survived normalization.
const FaqAnchor = "#faqs"

// Media is one canonical gallery or media descriptor.
type Media struct {
	ID      string
	URL     string
	Alt     string
	Caption string
	Kind    string
}
