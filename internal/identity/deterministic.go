package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntryUUID derives the deterministic identifier for a manifest entry.
func EntryUUID(contentKey string) uuid.UUID {
	return UUID("go-guides:entry:" + strings.TrimSpace(contentKey))
}

// BundleUUID derives the deterministic identifier for one (locale, key) bundle.
func BundleUUID(localeCode, contentKey string) uuid.UUID {
	return UUID("go-guides:bundle:" + strings.ToLower(strings.TrimSpace(localeCode)) + ":" + strings.TrimSpace(contentKey))
}
