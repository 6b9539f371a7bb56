package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/shelf/pkg/inventory"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("4294967295  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)

	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) none(indent string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprintf(pp.out(), "%s none\n", indent)
}

func (pp *PrettyPrint) id(id uint32) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	s := fmt.Sprint(id)
	_, _ = y.Fprint(pp.out(), s)
	_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(s)))
}

// Inventory prints every compartment with its containers and items indented
// beneath it.
func (pp *PrettyPrint) Inventory(inv *inventory.Inventory) {
	if len(inv.Compartments) == 0 {
		pp.Title("Inventory")
		pp.none("")
		pp.NewLine()
		return
	}

	f := color.New(color.Faint)
	t := color.New()

	for _, comp := range inv.Compartments {
		pp.TitleWithCount(comp.Name, len(comp.ContainerIDs), "container")
		containers := inv.ContainersIn(comp.ID)
		if len(containers) == 0 {
			pp.none("  ")
		}
		for _, cont := range containers {
			pp.id(cont.ID)
			_, _ = t.Fprintf(pp.out(), "  ▸ %s", cont.Name)
			if names := inv.TagNames(cont.TagIDs); len(names) > 0 {
				_, _ = f.Fprintf(pp.out(), " [%s]", strings.Join(names, ", "))
			}
			_, _ = t.Fprintln(pp.out(), "")

			items := inv.ItemsIn(cont.ID)
			if len(items) == 0 {
				pp.none("    ")
			}
			for _, it := range items {
				pp.id(it.ID)
				_, _ = t.Fprintf(pp.out(), "    • %s", it.Name)
				if names := inv.TagNames(it.TagIDs); len(names) > 0 {
					_, _ = f.Fprintf(pp.out(), " [%s]", strings.Join(names, ", "))
				}
				_, _ = t.Fprintln(pp.out(), "")
			}
		}
		pp.NewLine()
	}
}

// Tags prints the tag table with how often each tag is used.
func (pp *PrettyPrint) Tags(inv *inventory.Inventory) {
	pp.Title("Tags")
	if len(inv.Tags) == 0 {
		pp.none("")
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Name"), bold("Containers"), bold("Items"))
	for _, tag := range inv.Tags {
		containers, items := 0, 0
		for _, c := range inv.Containers {
			if hasTag(c.TagIDs, tag.ID) {
				containers++
			}
		}
		for _, it := range inv.Items {
			if hasTag(it.TagIDs, tag.ID) {
				items++
			}
		}
		tbl.AddRow(tag.ID, tag.Name, containers, items)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Created reports a freshly added entity.
func (pp *PrettyPrint) Created(kind inventory.Kind, id uint32, name string) {
	c := color.New(color.FgGreen)
	_, _ = c.Fprintf(pp.out(), "%s %d %q created\n", kind, id, name)
}

func hasTag(ids []uint32, id uint32) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
