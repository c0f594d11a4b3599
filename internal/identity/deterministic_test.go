package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	a := UUID("go-guides:entry:visa-renewal")
	b := UUID("go-guides:entry:visa-renewal")
	if a != b {
		t.Fatalf("same key must derive the same uuid: %s vs %s", a, b)
	}
	if a == uuid.Nil {
		t.Fatal("non-empty key must not derive the nil uuid")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("blank key must derive the nil uuid, got %s", got)
	}
}

func TestEntityPrefixesAvoidCollisions(t *testing.T) {
	entry := EntryUUID("visa-renewal")
	bundle := BundleUUID("en", "visa-renewal")
	if entry == bundle {
		t.Fatal("entry and bundle ids for the same key must differ")
	}
}
