// Package command turns typed lines into verbs and runs them against a
// Session.
package command

// Verb identifies a recognized command.
type Verb int

const (
	// VerbUnknown is any first token that is not in the table.
	VerbUnknown Verb = iota
	VerbQuit
	VerbForceQuit
	VerbWrite
	VerbWriteQuit
	VerbClear
	VerbMessages
	VerbOverview
	VerbHelp
	VerbAddTag
	VerbAddCompartment
	VerbAddContainer
	VerbAddItem
	VerbSearch
)

var verbs = map[string]Verb{
	":q":      VerbQuit,
	":q!":     VerbForceQuit,
	":w":      VerbWrite,
	":wq":     VerbWriteQuit,
	":ct":     VerbClear,
	"cls":     VerbClear,
	":0":      VerbMessages,
	":1":      VerbOverview,
	":help":   VerbHelp,
	":?":      VerbHelp,
	"help":    VerbHelp,
	"?":       VerbHelp,
	"hlp":     VerbHelp,
	":hlp":    VerbHelp,
	":atag":   VerbAddTag,
	":acomp":  VerbAddCompartment,
	":acont":  VerbAddContainer,
	":aitem":  VerbAddItem,
	":s":      VerbSearch,
	":search": VerbSearch,
}

var verbNames = map[Verb]string{
	VerbQuit:           ":q",
	VerbForceQuit:      ":q!",
	VerbWrite:          ":w",
	VerbWriteQuit:      ":wq",
	VerbClear:          ":ct",
	VerbMessages:       ":0",
	VerbOverview:       ":1",
	VerbHelp:           ":help",
	VerbAddTag:         ":atag",
	VerbAddCompartment: ":acomp",
	VerbAddContainer:   ":acont",
	VerbAddItem:        ":aitem",
	VerbSearch:         ":search",
}

func (v Verb) String() string {
	if name, ok := verbNames[v]; ok {
		return name
	}
	return "unknown"
}

// Mutating reports whether a successful run of the verb changes the
// inventory.
func (v Verb) Mutating() bool {
	switch v {
	case VerbAddTag, VerbAddCompartment, VerbAddContainer, VerbAddItem:
		return true
	}
	return false
}

// Command is a parsed line.
type Command struct {
	Verb Verb
	// Name is the first token exactly as typed.
	Name string
	Args []string
	// Line is the raw submitted text.
	Line string
}

// Known reports whether the verb was found in the table.
func (c Command) Known() bool { return c.Verb != VerbUnknown }

// Parse tokenizes line and resolves its first token to a Verb.
func Parse(line string) Command {
	tokens := Tokenize(line)
	cmd := Command{Line: line}
	if len(tokens) == 0 {
		return cmd
	}
	cmd.Name = tokens[0]
	cmd.Args = tokens[1:]
	cmd.Verb = verbs[cmd.Name]
	return cmd
}

// Templates are the command prefixes the recall history starts with.
func Templates() []string {
	return []string{":atag ", ":acomp ", ":acont ", ":aitem "}
}
