package manifest

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrKeyRequired             = errors.New("manifest: content key is required")
	ErrSlugRequired            = errors.New("manifest: slug is required")
	ErrSlugInvalid             = errors.New("manifest: slug contains invalid characters")
	ErrDuplicateKey            = errors.New("manifest: duplicate content key")
	ErrPrimaryAreaNotMember    = errors.New("manifest: primary area must be a member of areas")
	ErrUnknownChecklistItem    = errors.New("manifest: checklist override references unknown item id")
	ErrDanglingRelatedKey      = errors.New("manifest: related key does not exist in the registry")
	ErrDanglingBlockRef        = errors.New("manifest: block declaration references a nonexistent key")
	ErrEntryNotFound           = errors.New("manifest: entry not found")
	ErrSeedRequired            = errors.New("manifest: seed list is required")
	ErrChecklistStatusInvalid  = errors.New("manifest: checklist override status is invalid")
	ErrStructuredTypeEmpty     = errors.New("manifest: structured data type cannot be empty")
	ErrBlockTypeRequired       = errors.New("manifest: block declaration requires a type")
	ErrRelatedKeySelfReference = errors.New("manifest: entry cannot relate to itself")
)

const (
	registrySeedInvalidCode = "MANIFEST_SEED_INVALID"
)

// NotFoundError captures registry misses with the key that was requested.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrEntryNotFound.Error()
	}
	resource := strings.TrimSpace(e.Resource)
	if resource == "" {
		resource = "entry"
	}
	return fmt.Sprintf("manifest: %s %q not found", resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrEntryNotFound
}

// wrapSeedError tags fatal construction failures with a validation category so
// the facade can surface them consistently. Already-wrapped errors pass through.
func wrapSeedError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "manifest seed validation failed").
		WithTextCode(registrySeedInvalidCode)
}
