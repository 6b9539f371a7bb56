package state

// History is the recall list cycled with Up and Down. The cursor sits one past
// the newest entry when not browsing, and movement wraps at both ends.
type History struct {
	entries []string
	cursor  int
}

func NewHistory(seed []string) *History {
	h := &History{entries: append([]string{}, seed...)}
	h.Reset()
	return h
}

// Add appends a line and stops browsing.
func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
	h.Reset()
}

// Reset moves the cursor past the newest entry.
func (h *History) Reset() { h.cursor = len(h.entries) }

// Prev steps toward older entries.
func (h *History) Prev() (string, bool) {
	n := len(h.entries)
	if n == 0 {
		return "", false
	}
	h.cursor = (h.cursor - 1 + n) % n
	return h.entries[h.cursor], true
}

// Next steps toward newer entries.
func (h *History) Next() (string, bool) {
	n := len(h.entries)
	if n == 0 {
		return "", false
	}
	h.cursor = (h.cursor + 1) % (n + 1)
	if h.cursor == n {
		h.cursor = 0
	}
	return h.entries[h.cursor], true
}

func (h *History) Len() int { return len(h.entries) }

// Scrollback keeps the newest limit lines of the message pane.
type Scrollback struct {
	lines []string
	limit int
}

func NewScrollback(limit int) *Scrollback {
	return &Scrollback{limit: limit}
}

func (s *Scrollback) Append(line string) {
	s.lines = append(s.lines, line)
	if over := len(s.lines) - s.limit; over > 0 {
		s.lines = append(s.lines[:0:0], s.lines[over:]...)
	}
}

func (s *Scrollback) Lines() []string { return s.lines }

func (s *Scrollback) Clear() { s.lines = nil }
