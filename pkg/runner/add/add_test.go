package add

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/store"
)

func open(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Open(&store.Settings{Path: t.TempDir(), Engine: store.BackendFile})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestAddPersists(t *testing.T) {
	color.NoColor = true
	p := open(t)
	var buf bytes.Buffer
	steps := []Add{
		{Kind: inventory.KindTag, Name: "tools"},
		{Kind: inventory.KindCompartment, Name: "Garage"},
		{Kind: inventory.KindContainer, Name: "North Wall", Parent: 0, Tags: []uint32{0}},
		{Kind: inventory.KindItem, Name: "Drill", Parent: 0},
	}
	for _, a := range steps {
		a.Persistence = p
		a.Out = &buf
		if err := a.Do(context.Background()); err != nil {
			t.Fatalf("%s %q: %v", a.Kind, a.Name, err)
		}
	}

	inv, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(inv.Tags) != 1 || len(inv.Compartments) != 1 || len(inv.Containers) != 1 || len(inv.Items) != 1 {
		t.Fatalf("unexpected inventory %+v", inv)
	}
	if !strings.Contains(buf.String(), "item 0 \"Drill\" created") {
		t.Fatalf("missing confirmation:\n%s", buf.String())
	}
}

func TestAddMissingParentLeavesDocument(t *testing.T) {
	p := open(t)
	a := Add{Kind: inventory.KindItem, Name: "Drill", Parent: 7, Persistence: p, Out: &bytes.Buffer{}}
	err := a.Do(context.Background())
	if !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	inv, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if inv.NextItemID != 0 || len(inv.Items) != 0 {
		t.Fatalf("document changed: %+v", inv)
	}
}

func TestAddWithoutPersistence(t *testing.T) {
	a := Add{Kind: inventory.KindTag, Name: "x"}
	if err := a.Do(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
