// Package term is the raw terminal surface: raw mode and the alternate
// screen, decoded key presses and frame output.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/input"
	xterm "golang.org/x/term"

	"tableflip.dev/shelf/pkg/tui/events"
)

// ErrNotTerminal is returned by Open when stdin is not a terminal.
var ErrNotTerminal = errors.New("term: not a terminal")

// Terminal owns the tty for the lifetime of the interactive session.
type Terminal struct {
	in     *os.File
	out    *os.File
	state  *xterm.State
	reader *input.Reader

	queue  []events.Key
	closed atomic.Bool
}

// Open puts in into raw mode and switches out to the alternate screen. The
// caller must call Restore on every exit path.
func Open(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	st, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("term: raw mode: %w", err)
	}
	reader, err := input.NewReader(in, os.Getenv("TERM"), 0)
	if err != nil {
		_ = xterm.Restore(fd, st)
		return nil, fmt.Errorf("term: input reader: %w", err)
	}
	t := &Terminal{in: in, out: out, state: st, reader: reader}
	if _, err := io.WriteString(out, ansi.SetAltScreenSaveCursorMode+ansi.HideCursor); err != nil {
		_ = t.Restore()
		return nil, fmt.Errorf("term: enter alt screen: %w", err)
	}
	return t, nil
}

// ReadKey blocks for the next key the loop cares about. It returns io.EOF
// after Cancel or when input ends.
func (t *Terminal) ReadKey() (events.Key, error) {
	for len(t.queue) == 0 {
		if t.closed.Load() {
			return events.Key{}, io.EOF
		}
		evs, err := t.reader.ReadEvents()
		if err != nil {
			if t.closed.Load() {
				return events.Key{}, io.EOF
			}
			return events.Key{}, err
		}
		for _, ev := range evs {
			if k, ok := ev.(input.KeyPressEvent); ok {
				t.queue = append(t.queue, Translate(k)...)
			}
		}
	}
	k := t.queue[0]
	t.queue = t.queue[1:]
	return k, nil
}

// Cancel unblocks a pending ReadKey.
func (t *Terminal) Cancel() {
	if t.closed.Swap(true) {
		return
	}
	t.reader.Cancel()
}

// Size reports the terminal width and height in cells.
func (t *Terminal) Size() (int, int, error) {
	return xterm.GetSize(int(t.out.Fd()))
}

// Draw repaints the screen from the top-left corner.
func (t *Terminal) Draw(frame string) error {
	var b strings.Builder
	b.WriteString(ansi.CursorHomePosition)
	b.WriteString(strings.ReplaceAll(frame, "\n", ansi.EraseLineRight+"\r\n"))
	b.WriteString(ansi.EraseLineRight)
	b.WriteString(ansi.EraseScreenBelow)
	_, err := io.WriteString(t.out, b.String())
	return err
}

// Restore leaves the alternate screen and returns the tty to cooked mode.
func (t *Terminal) Restore() error {
	t.Cancel()
	_, werr := io.WriteString(t.out, ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode)
	rerr := xterm.Restore(int(t.in.Fd()), t.state)
	cerr := t.reader.Close()
	return errors.Join(werr, rerr, cerr)
}

// Translate maps a decoded key press to zero or more editor keys. Printable
// text yields one key per code point.
func Translate(k input.KeyPressEvent) []events.Key {
	if k.Mod.Contains(input.ModCtrl) {
		if k.Code == 'c' {
			return []events.Key{events.Press(events.KeyCtrlC)}
		}
		return nil
	}
	switch k.Code {
	case input.KeyEnter:
		return []events.Key{events.Press(events.KeyEnter)}
	case input.KeyBackspace:
		return []events.Key{events.Press(events.KeyBackspace)}
	case input.KeyDelete:
		return []events.Key{events.Press(events.KeyDelete)}
	case input.KeyLeft:
		return []events.Key{events.Press(events.KeyLeft)}
	case input.KeyRight:
		return []events.Key{events.Press(events.KeyRight)}
	case input.KeyHome:
		return []events.Key{events.Press(events.KeyHome)}
	case input.KeyEnd:
		return []events.Key{events.Press(events.KeyEnd)}
	case input.KeyUp:
		return []events.Key{events.Press(events.KeyUp)}
	case input.KeyDown:
		return []events.Key{events.Press(events.KeyDown)}
	case input.KeyEscape:
		return []events.Key{events.Press(events.KeyEscape)}
	}
	if k.Text == "" || k.Mod.Contains(input.ModAlt) {
		return nil
	}
	keys := make([]events.Key, 0, len(k.Text))
	for _, r := range k.Text {
		keys = append(keys, events.Rune(r))
	}
	return keys
}
