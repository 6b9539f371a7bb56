package events

import "fmt"

// Code identifies a key. KeyRune carries a printable code point in Key.Rune.
type Code int

const (
	KeyUnknown Code = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyEscape
	KeyCtrlC
)

var codeNames = map[Code]string{
	KeyUnknown:   "unknown",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyEscape:    "esc",
	KeyCtrlC:     "ctrl+c",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Key is a decoded key press.
type Key struct {
	Code Code
	Rune rune
}

// Rune builds a printable key.
func Rune(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Press builds a non-printable key.
func Press(c Code) Key { return Key{Code: c} }

func (k Key) String() string {
	if k.Code == KeyRune {
		return fmt.Sprintf("%q", k.Rune)
	}
	return k.Code.String()
}
