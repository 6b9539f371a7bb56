package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/shelf/pkg/inventory"
)

const documentKey = "inventory.json"

func flatTransform(string) []string { return []string{} }

// openDiskv stores the document as basePath/inventory.json. Writes go through
// a temp dir and a rename.
func openDiskv(basePath string) (*diskvStore, error) {
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvStore{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			TempDir:   filepath.Join(basePath, ".tmp"),
			Transform: flatTransform,
			// No read cache: other shelf processes write the same file.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

type diskvStore struct {
	d        *diskv.Diskv
	basePath string
}

func (p *diskvStore) Load() (*inventory.Inventory, error) {
	data, err := p.d.Read(documentKey)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", p.Path(), err)
	}
	return decode(data)
}

func (p *diskvStore) Save(inv *inventory.Inventory) error {
	data, err := encode(inv)
	if err != nil {
		return err
	}
	if err := p.d.Write(documentKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", p.Path(), err)
	}
	return nil
}

func (p *diskvStore) Watch(ctx context.Context) (<-chan Event, error) {
	return watchFile(ctx, p.basePath, documentKey)
}

func (p *diskvStore) Path() string {
	return filepath.Join(p.basePath, documentKey)
}

func (p *diskvStore) Close() error { return nil }
