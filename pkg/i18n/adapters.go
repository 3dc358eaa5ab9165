package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var defaultLocales embed.FS

// TranslationAdapter supplies translations as lang → key tree.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from memory. Handy in tests.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(a.Data))
	for lang, tree := range a.Data {
		out[lang] = maps.Clone(tree)
	}
	return out, nil
}

// FSAdapter loads every YAML file matching pattern in fsys, merging files in
// lexical order. Later files override earlier keys.
type FSAdapter struct {
	fsys    fs.FS
	pattern string
}

// NewFSAdapter creates an adapter over fsys, e.g. os.DirFS("./locales") with "*.yaml".
func NewFSAdapter(fsys fs.FS, pattern string) *FSAdapter {
	return &FSAdapter{fsys: fsys, pattern: pattern}
}

// DefaultAdapter returns the adapter for the embedded bundles.
func DefaultAdapter() *FSAdapter {
	return NewFSAdapter(defaultLocales, path.Join("locales", "*.yaml"))
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	files, err := fs.Glob(a.fsys, a.pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTranslationFiles, a.pattern)
	}
	slices.Sort(files)

	result := make(map[string]map[string]any)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		parsed, err := ParseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		merge(result, parsed)
	}
	return result, nil
}

// ParseYAML decodes a translation document.
func ParseYAML(content []byte) (map[string]map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrFailedToParseYAML, lang, val)
		}
		result[lang] = tree
	}
	return result, nil
}

func merge(dst, src map[string]map[string]any) {
	for lang, tree := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(tree))
		}
		mergeTree(dst[lang], tree)
	}
}

// mergeTree copies src into dst, descending into maps present on both sides.
func mergeTree(dst, src map[string]any) {
	for key, val := range src {
		srcMap, srcIsMap := val.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			merged := maps.Clone(dstMap)
			mergeTree(merged, srcMap)
			dst[key] = merged
			continue
		}
		dst[key] = val
	}
}
