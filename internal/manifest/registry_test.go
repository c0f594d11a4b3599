package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-guides/pkg/interfaces"
)

type traceRecorder struct {
	traces [][]any
}

func (r *traceRecorder) Trace(_ string, args ...any) { r.traces = append(r.traces, args) }
func (r *traceRecorder) Debug(string, ...any)        {}
func (r *traceRecorder) Info(string, ...any)         {}
func (r *traceRecorder) Warn(string, ...any)         {}
func (r *traceRecorder) Error(string, ...any)        {}
func (r *traceRecorder) Fatal(string, ...any)        {}

func (r *traceRecorder) WithContext(context.Context) interfaces.Logger { return r }

func validSeed() []Entry {
	return []Entry{
		{
			Key:         "guide-billing-intro",
			Slug:        "billing-intro",
			Status:      StatusPublished,
			Areas:       []Area{"billing", "onboarding"},
			PrimaryArea: "billing",
			RelatedKeys: []Key{"guide-plans"},
			Blocks: []BlockDeclaration{
				{Type: "generic-content"},
				{Type: "related-guides", Ref: "guide-plans"},
			},
			Options: map[string]any{"showPlanChoice": true},
		},
		{
			Key:         "guide-plans",
			Slug:        "plans",
			Status:      StatusDraft,
			Areas:       []Area{"billing"},
			PrimaryArea: "billing",
			ChecklistOverrides: []ChecklistOverride{
				{ItemID: "media", Status: "complete"},
			},
		},
	}
}

func TestNewRegistryBuildsFromSeed(t *testing.T) {
	registry, err := NewRegistry(validSeed())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if registry.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", registry.Len())
	}

	entry, err := registry.Get("guide-billing-intro")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry.Slug != "billing-intro" {
		t.Fatalf("unexpected slug %q", entry.Slug)
	}

	keys := registry.Keys()
	if keys[0] != "guide-billing-intro" || keys[1] != "guide-plans" {
		t.Fatalf("seed order not preserved: %v", keys)
	}
}

func TestNewRegistryLogsEntryIdentity(t *testing.T) {
	rec := &traceRecorder{}

	registry, err := NewRegistry(validSeed(), WithLogger(rec))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(rec.traces) != registry.Len() {
		t.Fatalf("expected one trace per entry, got %d", len(rec.traces))
	}

	entry, err := registry.Get("guide-billing-intro")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	args := rec.traces[0]
	var entryID string
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "entry_id" {
			entryID, _ = args[i+1].(string)
		}
	}
	if entryID == "" {
		t.Fatalf("expected entry_id in trace args, got %v", args)
	}
	if entryID != entry.ID().String() {
		t.Fatalf("trace id %s does not match derived id %s", entryID, entry.ID())
	}
}

func TestNewRegistryRejectsDuplicateKeys(t *testing.T) {
	seed := validSeed()
	seed = append(seed, Entry{Key: "guide-plans", Slug: "plans-copy", Areas: []Area{"billing"}, PrimaryArea: "billing"})

	_, err := NewRegistry(seed)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestNewRegistryRejectsDanglingReferences(t *testing.T) {
	t.Run("related key", func(t *testing.T) {
		seed := validSeed()
		seed[1].RelatedKeys = []Key{"guide-missing"}

		_, err := NewRegistry(seed)
		if !errors.Is(err, ErrDanglingRelatedKey) {
			t.Fatalf("expected ErrDanglingRelatedKey, got %v", err)
		}
	})

	t.Run("block ref", func(t *testing.T) {
		seed := validSeed()
		seed[1].Blocks = []BlockDeclaration{{Type: "related-guides", Ref: "guide-missing"}}

		_, err := NewRegistry(seed)
		if !errors.Is(err, ErrDanglingBlockRef) {
			t.Fatalf("expected ErrDanglingBlockRef, got %v", err)
		}
	})
}

func TestNewRegistryValidatesEntries(t *testing.T) {
	t.Run("primary area must be member", func(t *testing.T) {
		seed := validSeed()
		seed[0].PrimaryArea = "payments"

		_, err := NewRegistry(seed)
		if !errors.Is(err, ErrPrimaryAreaNotMember) {
			t.Fatalf("expected ErrPrimaryAreaNotMember, got %v", err)
		}
	})

	t.Run("unknown checklist override id", func(t *testing.T) {
		seed := validSeed()
		seed[1].ChecklistOverrides = []ChecklistOverride{{ItemID: "screenshots", Status: "complete"}}

		_, err := NewRegistry(seed)
		if !errors.Is(err, ErrUnknownChecklistItem) {
			t.Fatalf("expected ErrUnknownChecklistItem, got %v", err)
		}
	})

	t.Run("empty seed", func(t *testing.T) {
		_, err := NewRegistry(nil)
		if !errors.Is(err, ErrSeedRequired) {
			t.Fatalf("expected ErrSeedRequired, got %v", err)
		}
	})

	t.Run("missing slug", func(t *testing.T) {
		seed := validSeed()
		seed[0].Slug = ""

		if _, err := NewRegistry(seed); err == nil {
			t.Fatal("expected slug validation error")
		}
	})

	t.Run("self reference", func(t *testing.T) {
		seed := validSeed()
		seed[0].RelatedKeys = []Key{"guide-billing-intro"}

		_, err := NewRegistry(seed)
		if !errors.Is(err, ErrRelatedKeySelfReference) {
			t.Fatalf("expected ErrRelatedKeySelfReference, got %v", err)
		}
	})
}

func TestRegistryGetReturnsNotFound(t *testing.T) {
	registry, err := NewRegistry(validSeed())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	_, err = registry.Get("guide-unknown")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.Key != "guide-unknown" {
		t.Fatalf("unexpected key %q", notFound.Key)
	}
}

func TestRegistryEntriesAreIsolatedCopies(t *testing.T) {
	registry, err := NewRegistry(validSeed())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	first, _ := registry.Get("guide-billing-intro")
	first.Options["showPlanChoice"] = false
	first.Areas[0] = "mutated"

	second, _ := registry.Get("guide-billing-intro")
	if second.Options["showPlanChoice"] != true {
		t.Fatal("registry entry options leaked caller mutation")
	}
	if second.Areas[0] != "billing" {
		t.Fatal("registry entry areas leaked caller mutation")
	}
}
