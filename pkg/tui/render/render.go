// Package render paints a state.Frame into a string sized to the terminal.
// It has no behavior of its own.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/tree"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/shelf/pkg/command"
	"tableflip.dev/shelf/pkg/inventory"
	"tableflip.dev/shelf/pkg/tui/state"
	"tableflip.dev/shelf/pkg/tui/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	inputHeight   = 3
	minPanel      = 3
)

// Renderer turns frames into screen contents.
type Renderer struct {
	theme theme.Theme
}

func New(t theme.Theme) *Renderer {
	return &Renderer{theme: t}
}

// Render returns f.Height lines no wider than f.Width. A zero size falls back
// to 80x24; a terminal too small for the panel gets only the input line.
func (r *Renderer) Render(f state.Frame) string {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	panelH := h - 1 - inputHeight
	if panelH < minPanel || w < 8 {
		return clip(r.inputLine(f.Line, f.Caret, w), w)
	}
	innerW, innerH := w-2, panelH-2

	var body []string
	if f.View == command.ViewOverview {
		body = r.overview(f.Inventory, innerW, innerH)
	} else {
		body = messages(f.Messages, innerW, innerH)
	}

	panel := r.theme.Panel.Frame.
		Width(w).
		Height(panelH).
		MaxHeight(panelH).
		Render(r.theme.Panel.Body.Render(strings.Join(body, "\n")))
	input := r.theme.Input.Frame.
		Width(w).
		Render(r.inputLine(f.Line, f.Caret, innerW))

	return lipgloss.JoinVertical(lipgloss.Left, r.header(f, w), panel, input)
}

func (r *Renderer) header(f state.Frame, w int) string {
	th := r.theme.Header
	tabs := []string{}
	for _, v := range []command.View{command.ViewMessages, command.ViewOverview} {
		label := fmt.Sprintf(" %d %s ", int(v), v)
		if v == f.View {
			tabs = append(tabs, th.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, th.Tab.Render(label))
		}
	}
	parts := []string{th.Title.Render("shelf"), strings.Join(tabs, "")}
	if f.Pending {
		parts = append(parts, th.Pending.Render("● unsaved"))
	}
	if f.Path != "" {
		parts = append(parts, th.Path.Render(f.Path))
	}
	return clip(strings.Join(parts, " "), w)
}

// messages wraps the scrollback to width and keeps the newest lines that fit.
func messages(lines []string, w, h int) []string {
	var out []string
	for _, line := range lines {
		wrapped := wrap.String(wordwrap.String(line, w), w)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	if len(out) > h {
		out = out[len(out)-h:]
	}
	return out
}

func (r *Renderer) overview(inv *inventory.Inventory, w, h int) []string {
	th := r.theme.Overview
	if inv == nil || len(inv.Compartments) == 0 {
		return []string{th.Empty.Render("nothing stored yet; try :acomp <name>")}
	}

	id := func(n uint32) string { return th.ID.Render(fmt.Sprintf("#%d", n)) }
	tags := func(ids []uint32) string {
		names := inv.TagNames(ids)
		if len(names) == 0 {
			return ""
		}
		return " " + th.Tag.Render("["+strings.Join(names, ", ")+"]")
	}

	root := tree.Root("").
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(th.Enumerator)
	for _, comp := range inv.Compartments {
		ct := tree.Root(th.Compartment.Render(comp.Name) + " " + id(comp.ID)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(th.Enumerator)
		for _, cont := range inv.ContainersIn(comp.ID) {
			bt := tree.Root(th.Container.Render(cont.Name) + " " + id(cont.ID) + tags(cont.TagIDs)).
				Enumerator(tree.RoundedEnumerator).
				EnumeratorStyle(th.Enumerator)
			for _, it := range inv.ItemsIn(cont.ID) {
				bt.Child(th.Item.Render(it.Name) + " " + id(it.ID) + tags(it.TagIDs))
			}
			ct.Child(bt)
		}
		root.Child(ct)
	}

	out := []string{}
	if len(inv.Tags) > 0 {
		names := make([]string, 0, len(inv.Tags))
		for _, t := range inv.Tags {
			names = append(names, th.Tag.Render(t.Name)+id(t.ID))
		}
		out = append(out, "tags: "+strings.Join(names, " "))
	}
	out = append(out, strings.Split(root.String(), "\n")...)
	if len(out) > h {
		more := len(out) - h + 1
		out = append(out[:h-1], th.Empty.Render(fmt.Sprintf("… %d more lines", more)))
	}
	for i := range out {
		out[i] = clip(out[i], w)
	}
	return out
}

// inputLine draws the prompt and the buffer with the caret cell reversed,
// scrolled so the caret stays visible.
func (r *Renderer) inputLine(line string, caret, w int) string {
	th := r.theme.Input
	prompt := "> "
	avail := w - len(prompt)
	if avail < 1 {
		avail = 1
	}
	runes := []rune(line)
	if caret > len(runes) {
		caret = len(runes)
	}
	start := 0
	if caret >= avail {
		start = caret - avail + 1
	}
	end := start + avail
	if end > len(runes) {
		end = len(runes)
	}

	var b strings.Builder
	b.WriteString(th.Prompt.Render(prompt))
	b.WriteString(th.Text.Render(string(runes[start:caret])))
	if caret < len(runes) {
		b.WriteString(th.Caret.Render(string(runes[caret])))
		if caret+1 < end {
			b.WriteString(th.Text.Render(string(runes[caret+1 : end])))
		}
	} else {
		b.WriteString(th.Caret.Render(" "))
	}
	return b.String()
}

func clip(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	return truncate.StringWithTail(s, uint(w), "…")
}
