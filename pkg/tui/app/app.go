// Package app runs the interactive main loop: render when dirty, block for
// the next event, apply it.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/shelf/pkg/tui/events"
	"tableflip.dev/shelf/pkg/tui/state"
)

// Screen is the terminal as the loop sees it.
type Screen interface {
	Size() (width, height int, err error)
	Draw(frame string) error
}

// Renderer paints a frame.
type Renderer interface {
	Render(f state.Frame) string
}

// Source is the multiplexed event stream.
type Source interface {
	Next() (events.Event, bool)
}

// Loop ties the state to its event stream and screen. The state is only ever
// touched from the goroutine calling Run.
type Loop struct {
	State    *state.State
	Events   Source
	Screen   Screen
	Renderer Renderer
	Logger   *slog.Logger

	frames int
}

// Run iterates until a quit verb runs or the event stream closes. Each
// iteration checks the terminal size, paints if anything changed, then blocks
// for one event.
func (l *Loop) Run() error {
	log := l.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for !l.State.Done() {
		if w, h, err := l.Screen.Size(); err != nil {
			log.Debug("terminal size", "error", err)
		} else {
			l.State.Resize(w, h)
		}

		if l.State.NeedsRedraw() {
			if err := l.Screen.Draw(l.Renderer.Render(l.State.Frame())); err != nil {
				return fmt.Errorf("app: draw: %w", err)
			}
			l.State.Rendered()
			l.frames++
		}

		ev, ok := l.Events.Next()
		if !ok {
			log.Info("event stream closed")
			return nil
		}
		if ev.Kind == events.KindInput {
			log.Debug("event", "event", ev.Describe())
		}
		l.State.HandleEvent(ev)
	}
	log.Info("quit", "frames", l.frames)
	return nil
}

// Frames reports how many frames were painted.
func (l *Loop) Frames() int { return l.frames }
