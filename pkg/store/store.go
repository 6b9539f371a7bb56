package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/shelf/pkg/inventory"
)

// ErrCorrupt wraps documents that cannot be decoded or fail the integrity
// check.
var ErrCorrupt = errors.New("store: corrupt document")

// Persistence round-trips the whole inventory as one snapshot.
type Persistence interface {
	Load() (*inventory.Inventory, error)
	Save(inv *inventory.Inventory) error
	Watch(ctx context.Context) (<-chan Event, error)
	// Path is the location of the document, for display.
	Path() string
	Close() error
}

// Open creates a Persistence for cfg. A missing document is created empty, so
// Load succeeds on a fresh install.
func Open(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	var (
		p   Persistence
		err error
	)
	switch cfg.Backend() {
	case BackendSQLite:
		p, err = openSQLite(cfg.BasePath())
	case BackendFile, "":
		p, err = openDiskv(cfg.BasePath())
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
	if err != nil {
		return nil, err
	}
	if err := bootstrap(p); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

// Fallback opens a file store in a new temporary directory. It is used when
// the configured document cannot be opened.
func Fallback() (Persistence, error) {
	dir, err := os.MkdirTemp("", "shelf-")
	if err != nil {
		return nil, fmt.Errorf("store: temp dir: %w", err)
	}
	p, err := openDiskv(dir)
	if err != nil {
		return nil, err
	}
	if err := bootstrap(p); err != nil {
		return nil, err
	}
	return p, nil
}

func bootstrap(p Persistence) error {
	_, err := p.Load()
	if errors.Is(err, os.ErrNotExist) {
		if err := p.Save(inventory.New()); err != nil {
			return fmt.Errorf("store: initialize %s: %w", p.Path(), err)
		}
		return nil
	}
	return err
}

func encode(inv *inventory.Inventory) ([]byte, error) {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*inventory.Inventory, error) {
	inv := &inventory.Inventory{}
	if err := json.Unmarshal(data, inv); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	inv.Normalize()
	if err := inv.Check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return inv, nil
}
