package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/printers"
	"tableflip.dev/shelf/pkg/store"
)

type Get struct {
	ShowID bool
	JSON   bool
	// Tags prints the tag table instead of the compartment tree.
	Tags bool
	// Watch keeps printing every time the document changes until the context
	// is cancelled.
	Watch bool

	Persistence store.Persistence
	Out         io.Writer
	Logger      *slog.Logger
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	if n.Out == nil {
		n.Out = color.Output
	}

	if err := n.show(); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if n.Logger != nil {
				n.Logger.Debug("document changed", "path", ev.Path, "type", ev.Type)
			}
			if err := n.show(); err != nil {
				// A writer may be mid-save; the next event reloads.
				if errors.Is(err, store.ErrCorrupt) {
					continue
				}
				return err
			}
		}
	}
}

func (n *Get) show() error {
	inv, err := n.Persistence.Load()
	if err != nil {
		return err
	}
	if n.JSON {
		return n.json(inv)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	if n.Tags {
		pp.Tags(inv)
		return nil
	}
	pp.Inventory(inv)
	return nil
}

func (n *Get) json(inv *inventory.Inventory) error {
	var v any = inv
	if n.Tags {
		v = inv.Tags
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(n.Out, string(b))
	return err
}
