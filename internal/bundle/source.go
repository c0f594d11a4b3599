package bundle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-guides/pkg/interfaces"
)

var (
	ErrFilesystemRequired = errors.New("bundle: filesystem is required")
	ErrLocaleRequired     = errors.New("bundle: locale is required")
	ErrKeyRequired        = errors.New("bundle: content key is required")
)

// extensions are probed in order; the first file that exists wins.
var extensions = []string{".json", ".yaml", ".yml", ".md"}

// Config configures the filesystem bundle source.
type Config struct {
	// BasePath is the directory under the filesystem root where bundles live.
	BasePath string
}

// Source reads locale bundles from a filesystem laid out as
// <base>/<content-key>/<locale>.<ext>. JSON and YAML files decode directly
// into the value tree; markdown files contribute their frontmatter as tree
// fields with the body stored under "body".
type Source struct {
	fsys     fs.FS
	basePath string
}

var _ interfaces.BundleSource = (*Source)(nil)

// NewSource constructs a filesystem-backed bundle source.
func NewSource(fsys fs.FS, cfg Config) (*Source, error) {
	if fsys == nil {
		return nil, ErrFilesystemRequired
	}
	return &Source{
		fsys:     fsys,
		basePath: strings.Trim(path.Clean(cfg.BasePath), "/"),
	}, nil
}

// Bundle loads the value tree for (locale, key). A missing file is reported
// via the boolean, not an error; decode failures are errors.
func (s *Source) Bundle(ctx context.Context, locale string, key string) (interfaces.Bundle, bool, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	key = strings.TrimSpace(key)
	if locale == "" {
		return nil, false, ErrLocaleRequired
	}
	if key == "" {
		return nil, false, ErrKeyRequired
	}

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	for _, ext := range extensions {
		rel := s.relPath(key, locale+ext)
		data, err := fs.ReadFile(s.fsys, rel)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, false, fmt.Errorf("bundle: read %s: %w", rel, err)
		}

		tree, err := decode(ext, data)
		if err != nil {
			return nil, false, fmt.Errorf("bundle: decode %s: %w", rel, err)
		}
		return tree, true, nil
	}

	return nil, false, nil
}

// Locales enumerates every locale that has a bundle file for the key,
// satisfying the optional BundleValidator extension.
func (s *Source) Locales(ctx context.Context, key string) ([]string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := fs.ReadDir(s.fsys, s.relPath(key, ""))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("bundle: list %s: %w", key, err)
	}

	locales := make([]string, 0, len(entries))
	seen := map[string]struct{}{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := path.Ext(name)
		if !knownExtension(ext) {
			continue
		}
		locale := strings.ToLower(strings.TrimSuffix(name, ext))
		if locale == "" {
			continue
		}
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		locales = append(locales, locale)
	}
	return locales, nil
}

func (s *Source) relPath(parts ...string) string {
	segments := make([]string, 0, len(parts)+1)
	if s.basePath != "" && s.basePath != "." {
		segments = append(segments, s.basePath)
	}
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return path.Join(segments...)
}

func knownExtension(ext string) bool {
	for _, known := range extensions {
		if strings.EqualFold(ext, known) {
			return true
		}
	}
	return false
}

func decode(ext string, data []byte) (interfaces.Bundle, error) {
	switch strings.ToLower(ext) {
	case ".json":
		var tree map[string]any
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&tree); err != nil {
			return nil, err
		}
		return normalizeTree(tree), nil
	case ".yaml", ".yml":
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return normalizeTree(tree), nil
	case ".md":
		return decodeMarkdown(data)
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}

// decodeMarkdown maps frontmatter keys into the tree and stores the markdown
// body under "body" so fallback rendering can pick it up.
func decodeMarkdown(data []byte) (interfaces.Bundle, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, err
	}

	tree := normalizeTree(meta)
	if tree == nil {
		tree = map[string]any{}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		tree["body"] = trimmed
	}
	return tree, nil
}

// normalizeTree rewrites YAML's map[any]any branches into map[string]any so
// dotted-path lookups behave uniformly across formats.
func normalizeTree(tree map[string]any) interfaces.Bundle {
	if tree == nil {
		return nil
	}
	out := make(map[string]any, len(tree))
	for key, value := range tree {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return map[string]any(normalizeTree(typed))
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = normalizeValue(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
