package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/store"
	"tableflip.dev/shelf/pkg/tui/app"
	"tableflip.dev/shelf/pkg/tui/events"
	"tableflip.dev/shelf/pkg/tui/render"
	"tableflip.dev/shelf/pkg/tui/state"
	"tableflip.dev/shelf/pkg/tui/term"
	"tableflip.dev/shelf/pkg/tui/theme"
)

// UI runs the interactive tracker on a terminal.
type UI struct {
	Config     store.Config
	Tick       time.Duration
	Scrollback int
	Logger     *slog.Logger

	In  *os.File
	Out *os.File
}

func (d *UI) Do(ctx context.Context) error {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Tick <= 0 {
		d.Tick = events.DefaultTick
	}

	p, inv, banner, err := Open(d.Config, log)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	st := state.New(inv, p, state.Config{
		Scrollback: d.Scrollback,
		Path:       p.Path(),
		Logger:     log,
	})
	for _, line := range banner {
		st.Println(line)
	}
	st.Println("type :help for commands")

	t, err := term.Open(d.In, d.Out)
	if err != nil {
		return err
	}

	ev := events.New(t, d.Tick, log)
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			ev.Close()
			t.Cancel()
		case <-stop:
		}
	}()

	loop := &app.Loop{
		State:    st,
		Events:   ev,
		Screen:   t,
		Renderer: render.New(theme.Default()),
		Logger:   log,
	}
	runErr := loop.Run()

	close(stop)
	ev.Close()
	t.Cancel()
	ev.Wait()
	if err := t.Restore(); err != nil {
		log.Warn("restore terminal", "error", err)
	}
	return runErr
}

// Open opens the configured store and loads its inventory. When that fails
// the session continues on a temporary store and the returned banner lines
// explain what happened.
func Open(cfg store.Config, log *slog.Logger) (store.Persistence, *inventory.Inventory, []string, error) {
	p, inv, err := load(func() (store.Persistence, error) { return store.Open(cfg) })
	if err == nil {
		return p, inv, nil, nil
	}
	log.Warn("primary store unavailable", "error", err)

	fb, finv, ferr := load(store.Fallback)
	if ferr != nil {
		return nil, nil, nil, errors.Join(err, fmt.Errorf("fallback: %w", ferr))
	}
	log.Info("using fallback store", "path", fb.Path())
	banner := []string{
		fmt.Sprintf("could not open inventory: %v", err),
		fmt.Sprintf("changes go to a temporary store at %s", fb.Path()),
	}
	return fb, finv, banner, nil
}

func load(open func() (store.Persistence, error)) (store.Persistence, *inventory.Inventory, error) {
	p, err := open()
	if err != nil {
		return nil, nil, err
	}
	inv, err := p.Load()
	if err != nil {
		_ = p.Close()
		return nil, nil, err
	}
	return p, inv, nil
}
