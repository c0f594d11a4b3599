package guidecontent

import "strings"

// NormalizeFaqs canonicalizes FAQ entries. Questions come from q/question,
// answers from a/answer/answers (scalar or arbitrarily nested lists, which
// flatten into one ordered list). Entries missing a question or yielding zero
// non-empty answers are dropped. Duplicates by (question, joined answers)
// collapse to the first occurrence.
func NormalizeFaqs(raw any) []Faq {
	candidates := faqCandidates(raw)
	out := make([]Faq, 0, len(candidates))
	seen := map[string]struct{}{}

	for _, fields := range candidates {
		faq, ok := normalizeFaq(fields)
		if !ok {
			continue
		}
		dedupKey := faq.Question + "\x00" + strings.Join(faq.Answers, "\x00")
		if _, dup := seen[dedupKey]; dup {
			continue
		}
		seen[dedupKey] = struct{}{}
		out = append(out, faq)
	}
	return out
}

func faqCandidates(raw any) []map[string]any {
	switch typed := raw.(type) {
	case nil:
		return nil
	case []Faq:
		out := make([]map[string]any, 0, len(typed))
		for _, faq := range typed {
			out = append(out, map[string]any{
				"question": faq.Question,
				"answers":  faq.Answers,
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

func normalizeFaq(fields map[string]any) (Faq, bool) {
	if fields == nil {
		return Faq{}, false
	}

	question := firstString(fields, "q", "question")
	if question == "" {
		return Faq{}, false
	}

	answers := make([]string, 0, 2)
	for _, name := range []string{"a", "answer", "answers"} {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		answers = flattenAnswers(answers, raw)
	}
	if len(answers) == 0 {
		return Faq{}, false
	}

	return Faq{Question: question, Answers: answers}, true
}

// flattenAnswers recursively unwraps nested answer lists into a flat ordered
// list of trimmed, non-empty strings.
func flattenAnswers(dst []string, raw any) []string {
	switch typed := raw.(type) {
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			dst = append(dst, trimmed)
		}
	case []string:
		for _, item := range typed {
			dst = flattenAnswers(dst, item)
		}
	case []any:
		for _, item := range typed {
			dst = flattenAnswers(dst, item)
		}
	}
	return dst
}
