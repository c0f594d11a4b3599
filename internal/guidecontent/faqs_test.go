package guidecontent

import (
	"reflect"
	"testing"
)

func TestNormalizeFaqsFieldAliases(t *testing.T) {
	raw := []any{
		map[string]any{"q": "How do I pay?", "a": "By card."},
		map[string]any{"question": "Can I cancel?", "answer": []any{"Yes.", "Any time."}},
	}

	faqs := NormalizeFaqs(raw)
	if len(faqs) != 2 {
		t.Fatalf("expected 2 faqs, got %d", len(faqs))
	}
	if faqs[0].Question != "How do I pay?" || faqs[0].Answers[0] != "By card." {
		t.Fatalf("unexpected first faq %+v", faqs[0])
	}
	if !reflect.DeepEqual(faqs[1].Answers, []string{"Yes.", "Any time."}) {
		t.Fatalf("unexpected answers %v", faqs[1].Answers)
	}
}

func TestNormalizeFaqsFlattensNestedAnswers(t *testing.T) {
	raw := []any{
		map[string]any{
			"q": "What plans exist?",
			"a": []any{"Basic.", []any{"Pro.", []any{"Enterprise."}}},
		},
	}

	faqs := NormalizeFaqs(raw)
	if len(faqs) != 1 {
		t.Fatalf("expected 1 faq, got %d", len(faqs))
	}
	want := []string{"Basic.", "Pro.", "Enterprise."}
	if !reflect.DeepEqual(faqs[0].Answers, want) {
		t.Fatalf("expected %v, got %v", want, faqs[0].Answers)
	}
}

func TestNormalizeFaqsDropsIncomplete(t *testing.T) {
	raw := []any{
		map[string]any{"a": "Answer without question."},
		map[string]any{"q": "Question without answer?"},
		map[string]any{"q": "Blank answers?", "a": []any{"  ", ""}},
		"not a map",
	}

	if faqs := NormalizeFaqs(raw); len(faqs) != 0 {
		t.Fatalf("expected all entries dropped, got %v", faqs)
	}
}

func TestNormalizeFaqsDeduplicates(t *testing.T) {
	raw := []any{
		map[string]any{"q": "Same?", "a": "Yes."},
		map[string]any{"q": "Different?", "a": "Sure."},
		map[string]any{"question": "Same?", "answers": []any{"Yes."}},
	}

	faqs := NormalizeFaqs(raw)
	if len(faqs) != 2 {
		t.Fatalf("expected duplicate collapse to 2, got %d", len(faqs))
	}
	if faqs[0].Question != "Same?" || faqs[1].Question != "Different?" {
		t.Fatalf("first occurrence order lost: %+v", faqs)
	}
}

func TestNormalizeFaqsIdempotent(t *testing.T) {
	raw := []any{
		map[string]any{"q": "One?", "a": []any{"First.", "Second."}},
	}

	once := NormalizeFaqs(raw)
	twice := NormalizeFaqs(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization not idempotent:\n%v\n%v", once, twice)
	}
}
