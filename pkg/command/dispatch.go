package command

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tableflip.dev/shelf/pkg/inventory"
)

// View selects what the main panel shows.
type View int

const (
	ViewMessages View = iota
	ViewOverview
)

func (v View) String() string {
	if v == ViewOverview {
		return "overview"
	}
	return "messages"
}

// Session is the application state a handler works on. It is passed to every
// handler explicitly; handlers hold no state of their own.
type Session interface {
	Inventory() *inventory.Inventory
	// Save persists the inventory and clears the pending flag on success.
	Save() error
	Pending() bool
	MarkPending()
	Quit()
	SetView(View)
	ClearMessages()
	Println(line string)
	Remember(line string)
}

// Handler runs one verb.
type Handler func(s Session, cmd Command) error

// Dispatcher routes parsed commands to their handlers.
type Dispatcher struct {
	handlers map[Verb]Handler
	log      *slog.Logger
}

// NewDispatcher builds the verb table. A nil logger discards output.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		log: log,
		handlers: map[Verb]Handler{
			VerbQuit:           quit,
			VerbForceQuit:      forceQuit,
			VerbWrite:          write,
			VerbWriteQuit:      writeQuit,
			VerbClear:          clearMessages,
			VerbMessages:       showView(ViewMessages),
			VerbOverview:       showView(ViewOverview),
			VerbHelp:           help,
			VerbAddTag:         addTag,
			VerbAddCompartment: addCompartment,
			VerbAddContainer:   addContainer,
			VerbAddItem:        addItem,
			VerbSearch:         search,
		},
	}
}

// Run parses and dispatches a submitted line.
func (d *Dispatcher) Run(s Session, line string) error {
	return d.Dispatch(s, Parse(line))
}

// Dispatch runs cmd against s. Recognized verbs are remembered whether or not
// they succeed. Handler errors are written to the message pane as a single
// line and also returned.
func (d *Dispatcher) Dispatch(s Session, cmd Command) error {
	if cmd.Name == "" {
		return nil
	}
	h, ok := d.handlers[cmd.Verb]
	if !ok {
		s.Println(fmt.Sprintf("no use for %s and args %s", cmd.Name, strings.Join(cmd.Args, " ")))
		d.log.Debug("unknown verb", "verb", cmd.Name, "args", cmd.Args)
		return nil
	}

	s.Remember(cmd.Line)
	err := h(s, cmd)
	if err != nil {
		s.Println(fmt.Sprintf("%s: %v", cmd.Name, err))
		d.log.Info("command failed", "verb", cmd.Verb.String(), "error", err)
		return err
	}
	if cmd.Verb.Mutating() {
		s.MarkPending()
	}
	d.log.Debug("command ok", "verb", cmd.Verb.String())
	return nil
}

func quit(s Session, cmd Command) error {
	if err := exactly(cmd, 0); err != nil {
		return err
	}
	if s.Pending() {
		s.Println("unsaved changes; :w to save, :q! to quit anyway")
		return nil
	}
	s.Quit()
	return nil
}

func forceQuit(s Session, cmd Command) error {
	if err := exactly(cmd, 0); err != nil {
		return err
	}
	s.Quit()
	return nil
}

func write(s Session, cmd Command) error {
	if err := exactly(cmd, 0); err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		return err
	}
	s.Println("written")
	return nil
}

func writeQuit(s Session, cmd Command) error {
	if err := write(s, cmd); err != nil {
		return err
	}
	s.Quit()
	return nil
}

func clearMessages(s Session, cmd Command) error {
	if err := exactly(cmd, 0); err != nil {
		return err
	}
	s.ClearMessages()
	return nil
}

func showView(v View) Handler {
	return func(s Session, cmd Command) error {
		if err := exactly(cmd, 0); err != nil {
			return err
		}
		s.SetView(v)
		return nil
	}
}

func help(s Session, _ Command) error {
	for _, line := range HelpText() {
		s.Println(line)
	}
	s.SetView(ViewMessages)
	return nil
}

func search(s Session, _ Command) error {
	s.Println("search is not implemented yet")
	return nil
}

func addTag(s Session, cmd Command) error {
	if err := exactly(cmd, 1); err != nil {
		return err
	}
	t, err := s.Inventory().AddTag(cmd.Args[0])
	if err != nil {
		return err
	}
	s.Println(cmd.Line)
	s.Println(fmt.Sprintf("  tag %d %q created", t.ID, t.Name))
	return nil
}

func addCompartment(s Session, cmd Command) error {
	if err := exactly(cmd, 1); err != nil {
		return err
	}
	c, err := s.Inventory().AddCompartment(cmd.Args[0])
	if err != nil {
		return err
	}
	s.Println(cmd.Line)
	s.Println(fmt.Sprintf("  compartment %d %q created", c.ID, c.Name))
	return nil
}

func addContainer(s Session, cmd Command) error {
	if err := atLeast(cmd, 2); err != nil {
		return err
	}
	compID, err := ParseID("compartment_id", cmd.Args[1])
	if err != nil {
		return err
	}
	tagIDs, err := parseIDs("tag_id", cmd.Args[2:])
	if err != nil {
		return err
	}
	c, err := s.Inventory().AddContainer(cmd.Args[0], compID, tagIDs)
	if err != nil {
		return err
	}
	s.Println(cmd.Line)
	s.Println(fmt.Sprintf("  container %d %q created in compartment %d", c.ID, c.Name, c.CompartmentID))
	return nil
}

func addItem(s Session, cmd Command) error {
	if err := exactly(cmd, 2); err != nil {
		return err
	}
	contID, err := ParseID("container_id", cmd.Args[1])
	if err != nil {
		return err
	}
	it, err := s.Inventory().AddItem(cmd.Args[0], contID)
	if err != nil {
		return err
	}
	s.Println(cmd.Line)
	s.Println(fmt.Sprintf("  item %d %q created in container %d", it.ID, it.Name, it.ContainerID))
	return nil
}

// HelpText is the listing written by the help verbs.
func HelpText() []string {
	return []string{
		"commands:",
		"  :q                       quit (refuses with unsaved changes)",
		"  :q!                      quit without saving",
		"  :w                       write the inventory",
		"  :wq                      write and quit",
		"  :ct, cls                 clear this pane",
		"  :0 / :1                  messages / overview",
		"  :help, :?, help, ?, hlp  this listing",
		"  :atag <name>                                  add a tag",
		"  :acomp <name>                                 add a compartment",
		"  :acont <name> <compartment_id> [tag_id...]    add a container",
		"  :aitem <name> <container_id>                  add an item",
		"quote names with spaces: :acont \"North Wall\" 0",
		"keys: up/down recall, esc clears the line",
	}
}
