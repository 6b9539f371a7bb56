package state

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/shelf/pkg/command"
	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/tui/events"
)

type memSaver struct {
	err   error
	saved []*inventory.Inventory
}

func (m *memSaver) Save(inv *inventory.Inventory) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, inv.Clone())
	return nil
}

func typeText(s *State, text string) {
	for _, r := range text {
		s.HandleKey(events.Rune(r))
	}
}

func press(s *State, codes ...events.Code) {
	for _, c := range codes {
		s.HandleKey(events.Press(c))
	}
}

func submit(s *State, line string) {
	typeText(s, line)
	press(s, events.KeyEnter)
}

func TestTypeAndBackspace(t *testing.T) {
	s := New(nil, nil, Config{})
	typeText(s, "hello")
	press(s, events.KeyBackspace, events.KeyBackspace)

	line, caret := s.Line()
	if line != "hel" || caret != 3 {
		t.Fatalf("line %q caret %d, want %q caret 3", line, caret, "hel")
	}
}

func TestMultibyteEditing(t *testing.T) {
	s := New(nil, nil, Config{})
	typeText(s, "héllo")
	press(s, events.KeyLeft, events.KeyLeft, events.KeyLeft)
	if _, caret := s.Line(); caret != 2 {
		t.Fatalf("caret = %d, want 2", caret)
	}

	press(s, events.KeyBackspace)
	if line, caret := s.Line(); line != "hllo" || caret != 1 {
		t.Fatalf("after backspace: %q caret %d", line, caret)
	}

	typeText(s, "ü")
	press(s, events.KeyDelete)
	if line, caret := s.Line(); line != "hülo" || caret != 2 {
		t.Fatalf("after insert+delete: %q caret %d", line, caret)
	}

	press(s, events.KeyEnd, events.KeyDelete, events.KeyRight)
	if line, caret := s.Line(); line != "hülo" || caret != 4 {
		t.Fatalf("at end: %q caret %d", line, caret)
	}

	press(s, events.KeyHome, events.KeyBackspace, events.KeyLeft)
	if line, caret := s.Line(); line != "hülo" || caret != 0 {
		t.Fatalf("at start: %q caret %d", line, caret)
	}

	press(s, events.KeyEscape)
	if line, caret := s.Line(); line != "" || caret != 0 {
		t.Fatalf("after escape: %q caret %d", line, caret)
	}
}

func TestByteOffset(t *testing.T) {
	cases := []struct {
		buf   string
		caret int
		want  int
	}{
		{buf: "", caret: 0, want: 0},
		{buf: "abc", caret: 2, want: 2},
		{buf: "héllo", caret: 2, want: 3},
		{buf: "héllo", caret: 5, want: 6},
		{buf: "✓x", caret: 1, want: 3},
		{buf: "abc", caret: 9, want: 3},
	}
	for _, tc := range cases {
		if got := byteOffset(tc.buf, tc.caret); got != tc.want {
			t.Errorf("byteOffset(%q, %d) = %d, want %d", tc.buf, tc.caret, got, tc.want)
		}
	}
}

func TestHistoryCycles(t *testing.T) {
	s := New(nil, nil, Config{})

	steps := []struct {
		code events.Code
		want string
	}{
		{code: events.KeyUp, want: ":aitem "},
		{code: events.KeyUp, want: ":acont "},
		{code: events.KeyDown, want: ":aitem "},
		{code: events.KeyDown, want: ":atag "},
		{code: events.KeyUp, want: ":aitem "},
	}
	for i, step := range steps {
		press(s, step.code)
		line, caret := s.Line()
		if line != step.want || caret != len([]rune(step.want)) {
			t.Fatalf("step %d: line %q caret %d, want %q", i, line, caret, step.want)
		}
	}

	press(s, events.KeyEscape)
	submit(s, ":atag tools")
	press(s, events.KeyUp)
	if line, _ := s.Line(); line != ":atag tools" {
		t.Fatalf("most recent entry = %q", line)
	}

	press(s, events.KeyEscape)
	submit(s, ":nope")
	press(s, events.KeyUp)
	if line, _ := s.Line(); line != ":atag tools" {
		t.Fatalf("unknown verb was remembered: %q", line)
	}
}

func TestSubmitMutatesAndSaves(t *testing.T) {
	saver := &memSaver{}
	s := New(inventory.New(), saver, Config{})

	submit(s, ":acomp Garage")
	submit(s, `:acont "North Wall" 0`)
	submit(s, ":aitem Drill 0")
	if !s.Pending() {
		t.Fatal("expected pending changes")
	}
	inv := s.Inventory()
	if len(inv.Items) != 1 || inv.Containers[0].Name != "North Wall" {
		t.Fatalf("unexpected inventory %+v", inv)
	}
	if line, _ := s.Line(); line != "" {
		t.Fatalf("line not cleared: %q", line)
	}

	press(s, events.KeyCtrlC)
	if s.Done() {
		t.Fatal("ctrl+c quit with pending changes")
	}

	submit(s, ":w")
	if s.Pending() || len(saver.saved) != 1 {
		t.Fatalf("pending=%v saves=%d", s.Pending(), len(saver.saved))
	}
	if len(saver.saved[0].Items) != 1 {
		t.Fatalf("saved snapshot = %+v", saver.saved[0])
	}

	press(s, events.KeyCtrlC)
	if !s.Done() {
		t.Fatal("ctrl+c did not quit after save")
	}
}

func TestFailedSaveKeepsPending(t *testing.T) {
	saver := &memSaver{err: errors.New("read-only file system")}
	s := New(inventory.New(), saver, Config{})

	submit(s, ":atag tools")
	submit(s, ":wq")
	if s.Done() || !s.Pending() {
		t.Fatalf("done=%v pending=%v", s.Done(), s.Pending())
	}
	msgs := s.Frame().Messages
	if !strings.Contains(msgs[len(msgs)-1], "read-only") {
		t.Fatalf("last message = %q", msgs[len(msgs)-1])
	}
}

func TestRedrawOnlyOnChange(t *testing.T) {
	s := New(nil, nil, Config{})
	if !s.NeedsRedraw() {
		t.Fatal("first frame not dirty")
	}
	s.Resize(80, 24)
	s.Rendered()

	s.HandleEvent(events.Event{Kind: events.KindTick})
	s.Resize(80, 24)
	if s.NeedsRedraw() {
		t.Fatal("tick or unchanged size marked frame dirty")
	}

	s.Resize(100, 30)
	if !s.NeedsRedraw() {
		t.Fatal("resize did not mark frame dirty")
	}
	s.Rendered()

	s.HandleEvent(events.Event{Kind: events.KindInput, Key: events.Rune('x')})
	if !s.NeedsRedraw() {
		t.Fatal("edit did not mark frame dirty")
	}
	s.Rendered()

	submit(s, "")
	s.Rendered()
	submit(s, ":1")
	if !s.NeedsRedraw() || s.Frame().View != command.ViewOverview {
		t.Fatalf("view switch: dirty=%v view=%v", s.NeedsRedraw(), s.Frame().View)
	}
}

func TestScrollbackIsBounded(t *testing.T) {
	s := New(nil, nil, Config{Scrollback: 3})
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		s.Println(line)
	}
	got := strings.Join(s.Frame().Messages, ",")
	if got != "c,d,e" {
		t.Fatalf("messages = %s", got)
	}
	submit(s, ":ct")
	if len(s.Frame().Messages) != 0 {
		t.Fatalf("messages after clear = %q", s.Frame().Messages)
	}
}
