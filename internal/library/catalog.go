package library

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"remuxer/internal/staging"
)

// Item is one candidate container.
type Item struct {
	Path      string `json:"path"`
	Container string `json:"container"`
}

// Catalog is a paged view over candidate containers.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, offset, limit int) ([]Item, error)
}

// FSCatalog lists files under a set of roots whose extension is configured.
// The listing is built once, sorted by path, and reused by later calls so
// paging stays stable while the scan rewrites files.
type FSCatalog struct {
	roots      []string
	extensions map[string]struct{}

	once  sync.Once
	items []Item
	err   error
}

// NewFSCatalog constructs a catalog over roots. Extensions are matched
// case-insensitively and may be given with or without a leading dot.
func NewFSCatalog(roots []string, extensions []string) *FSCatalog {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts[ext] = struct{}{}
		}
	}
	return &FSCatalog{roots: append([]string(nil), roots...), extensions: exts}
}

// Count returns the number of matching files.
func (c *FSCatalog) Count(ctx context.Context) (int, error) {
	if err := c.load(ctx); err != nil {
		return 0, err
	}
	return len(c.items), nil
}

// List returns up to limit items starting at offset.
func (c *FSCatalog) List(ctx context.Context, offset, limit int) ([]Item, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(c.items) {
		return nil, nil
	}
	end := len(c.items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]Item(nil), c.items[offset:end]...), nil
}

func (c *FSCatalog) load(ctx context.Context) error {
	c.once.Do(func() {
		c.items, c.err = c.walk(ctx)
	})
	return c.err
}

func (c *FSCatalog) walk(ctx context.Context) ([]Item, error) {
	var items []Item
	seen := make(map[string]struct{})
	for _, root := range c.roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			name := d.Name()
			if d.IsDir() {
				if path != root && (strings.HasPrefix(name, ".") || staging.IsScratchDir(name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") || !d.Type().IsRegular() {
				return nil
			}
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
			if _, ok := c.extensions[ext]; !ok {
				return nil
			}
			if _, dup := seen[path]; dup {
				return nil
			}
			seen[path] = struct{}{}
			items = append(items, Item{Path: path, Container: ext})
			return nil
		})
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// StaticCatalog serves a fixed list of items, used for explicit file
// arguments.
type StaticCatalog []Item

// Count returns the number of items.
func (c StaticCatalog) Count(context.Context) (int, error) { return len(c), nil }

// List returns up to limit items starting at offset.
func (c StaticCatalog) List(_ context.Context, offset, limit int) ([]Item, error) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(c) {
		return nil, nil
	}
	end := len(c)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]Item(nil), c[offset:end]...), nil
}

// ItemForPath builds an Item for a single file, taking the container from
// its extension.
func ItemForPath(path string) Item {
	return Item{
		Path:      path,
		Container: strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
	}
}
