// Package state holds the interactive session: the line editor, recall
// history, message scrollback and the inventory being edited. It is owned by
// the main loop and is not safe for concurrent use.
package state

import (
	"errors"
	"io"
	"log/slog"
	"unicode/utf8"

	"tableflip.dev/shelf/pkg/command"
	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/store"
	"tableflip.dev/shelf/pkg/tui/events"
)

// Saver persists the inventory. store.Persistence satisfies it.
type Saver interface {
	Save(inv *inventory.Inventory) error
}

// Config tunes a State.
type Config struct {
	// Scrollback bounds the message pane. Zero means store.DefaultScrollback.
	Scrollback int
	// Path is shown in the status line.
	Path   string
	Logger *slog.Logger
}

// State is the application state passed to every command handler.
type State struct {
	line  string
	caret int

	view     command.View
	messages *Scrollback
	history  *History

	inv        *inventory.Inventory
	saver      Saver
	dispatcher *command.Dispatcher
	path       string

	width, height int

	needsRedraw bool
	pending     bool
	quit        bool

	log *slog.Logger
}

var _ command.Session = (*State)(nil)

// New returns a state over inv that saves through saver. The first frame is
// always drawn.
func New(inv *inventory.Inventory, saver Saver, cfg Config) *State {
	if cfg.Scrollback <= 0 {
		cfg.Scrollback = store.DefaultScrollback
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if inv == nil {
		inv = inventory.New()
	}
	return &State{
		view:        command.ViewMessages,
		messages:    NewScrollback(cfg.Scrollback),
		history:     NewHistory(command.Templates()),
		inv:         inv,
		saver:       saver,
		dispatcher:  command.NewDispatcher(cfg.Logger),
		path:        cfg.Path,
		needsRedraw: true,
		log:         cfg.Logger,
	}
}

// HandleEvent applies one event from the stream.
func (s *State) HandleEvent(ev events.Event) {
	switch ev.Kind {
	case events.KindInput:
		s.HandleKey(ev.Key)
	case events.KindTick:
		// Ticks only wake the loop so it can check the terminal size.
	}
}

// HandleKey edits the line or submits it.
func (s *State) HandleKey(k events.Key) {
	switch k.Code {
	case events.KeyRune:
		s.insert(k.Rune)
	case events.KeyBackspace:
		if s.caret == 0 {
			return
		}
		s.cut(s.caret-1, s.caret)
		s.caret--
	case events.KeyDelete:
		if s.caret >= utf8.RuneCountInString(s.line) {
			return
		}
		s.cut(s.caret, s.caret+1)
	case events.KeyLeft:
		if s.caret > 0 {
			s.caret--
		}
	case events.KeyRight:
		if s.caret < utf8.RuneCountInString(s.line) {
			s.caret++
		}
	case events.KeyHome:
		s.caret = 0
	case events.KeyEnd:
		s.caret = utf8.RuneCountInString(s.line)
	case events.KeyEscape:
		s.setLine("")
		s.history.Reset()
	case events.KeyUp:
		if line, ok := s.history.Prev(); ok {
			s.setLine(line)
		}
	case events.KeyDown:
		if line, ok := s.history.Next(); ok {
			s.setLine(line)
		}
	case events.KeyEnter:
		s.Submit()
	case events.KeyCtrlC:
		s.Run(":q")
	default:
		return
	}
	s.needsRedraw = true
}

// Submit dispatches the current line and clears it.
func (s *State) Submit() {
	line := s.line
	s.setLine("")
	s.history.Reset()
	s.Run(line)
}

// Run dispatches line as if it had been typed.
func (s *State) Run(line string) {
	if err := s.dispatcher.Run(s, line); err != nil {
		s.log.Debug("command error", "line", line, "error", err)
	}
	s.needsRedraw = true
}

func (s *State) setLine(line string) {
	s.line = line
	s.caret = utf8.RuneCountInString(line)
}

func (s *State) insert(r rune) {
	off := byteOffset(s.line, s.caret)
	s.line = s.line[:off] + string(r) + s.line[off:]
	s.caret++
}

// cut removes the code points in [from, to).
func (s *State) cut(from, to int) {
	s.line = s.line[:byteOffset(s.line, from)] + s.line[byteOffset(s.line, to):]
}

// byteOffset maps a caret position in code points to a byte offset in buf.
// Positions past the end map to len(buf).
func byteOffset(buf string, caret int) int {
	i := 0
	for off := range buf {
		if i == caret {
			return off
		}
		i++
	}
	return len(buf)
}

// Resize records the terminal size and marks the frame dirty if it changed.
func (s *State) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.needsRedraw = true
}

// NeedsRedraw reports whether anything visible changed since the last frame.
func (s *State) NeedsRedraw() bool { return s.needsRedraw }

// Rendered clears the redraw flag after a frame was painted.
func (s *State) Rendered() { s.needsRedraw = false }

// Done reports whether a quit verb ran.
func (s *State) Done() bool { return s.quit }

// Line returns the edit buffer and the caret in code points.
func (s *State) Line() (string, int) { return s.line, s.caret }

// Frame captures what the renderer needs.
func (s *State) Frame() Frame {
	return Frame{
		Width:     s.width,
		Height:    s.height,
		View:      s.view,
		Messages:  s.messages.Lines(),
		Line:      s.line,
		Caret:     s.caret,
		Pending:   s.pending,
		Path:      s.path,
		Inventory: s.inv,
	}
}

// Session methods.

func (s *State) Inventory() *inventory.Inventory { return s.inv }

func (s *State) Save() error {
	if s.saver == nil {
		return errors.New("no store configured")
	}
	if err := s.saver.Save(s.inv); err != nil {
		return err
	}
	s.pending = false
	s.needsRedraw = true
	return nil
}

func (s *State) Pending() bool { return s.pending }

func (s *State) MarkPending() {
	s.pending = true
	s.needsRedraw = true
}

func (s *State) Quit() { s.quit = true }

func (s *State) SetView(v command.View) {
	s.view = v
	s.needsRedraw = true
}

func (s *State) ClearMessages() {
	s.messages.Clear()
	s.needsRedraw = true
}

func (s *State) Println(line string) {
	s.messages.Append(line)
	s.needsRedraw = true
}

func (s *State) Remember(line string) { s.history.Add(line) }
