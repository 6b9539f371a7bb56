package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/shelf/pkg/inventory"
)

type testConfig struct {
	path    string
	backend Backend
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) Backend() Backend {
	return t.backend
}

func TestPersistenceWatchEmitsDocumentChanges(t *testing.T) {
	for _, backend := range []Backend{BackendFile, BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			p, err := Open(testConfig{path: t.TempDir(), backend: backend})
			if err != nil {
				t.Fatalf("open persistence: %v", err)
			}
			defer p.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, err := p.Watch(ctx)
			if err != nil {
				t.Fatalf("watch: %v", err)
			}

			// Allow watcher goroutine to subscribe before saving.
			time.Sleep(50 * time.Millisecond)

			inv := inventory.New()
			inv.AddTag("tools")
			if err := p.Save(inv); err != nil {
				t.Fatalf("save: %v", err)
			}

			select {
			case evt := <-ch:
				if evt.Path != p.Path() {
					t.Fatalf("expected path %q, got %q", p.Path(), evt.Path)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for change event")
			}
		})
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Open(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("open persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
