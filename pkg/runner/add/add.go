package add

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/printers"
	"tableflip.dev/shelf/pkg/store"
)

// Add creates one entity and writes the inventory back.
type Add struct {
	Kind inventory.Kind
	Name string

	// Parent is the owning compartment for a container and the owning
	// container for an item.
	Parent uint32
	Tags   []uint32
	JSON   bool

	Persistence store.Persistence
	Out         io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	inv, err := n.Persistence.Load()
	if err != nil {
		return err
	}

	id, err := n.apply(inv)
	if err != nil {
		return err
	}
	if err := n.Persistence.Save(inv); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if n.JSON {
		return n.json(id)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Created(n.Kind, id, n.Name)
	return nil
}

func (n *Add) json(id uint32) error {
	b, err := json.Marshal(map[string]any{
		"kind": n.Kind,
		"id":   id,
		"name": n.Name,
	})
	if err != nil {
		return err
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func (n *Add) apply(inv *inventory.Inventory) (uint32, error) {
	switch n.Kind {
	case inventory.KindTag:
		t, err := inv.AddTag(n.Name)
		return t.ID, err
	case inventory.KindCompartment:
		c, err := inv.AddCompartment(n.Name)
		return c.ID, err
	case inventory.KindContainer:
		c, err := inv.AddContainer(n.Name, n.Parent, n.Tags)
		return c.ID, err
	case inventory.KindItem:
		it, err := inv.AddItem(n.Name, n.Parent, n.Tags...)
		return it.ID, err
	}
	return 0, fmt.Errorf("unknown kind %q", n.Kind)
}
