package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the terminal UI.
type Theme struct {
	Header   HeaderTheme
	Panel    PanelTheme
	Input    InputTheme
	Overview OverviewTheme
}

// HeaderTheme styles the top line: title, view tabs and the unsaved marker.
type HeaderTheme struct {
	Title     lipgloss.Style
	Path      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Pending   lipgloss.Style
}

// PanelTheme styles the framed main panel.
type PanelTheme struct {
	Frame lipgloss.Style
	Body  lipgloss.Style
}

// InputTheme styles the command line at the bottom.
type InputTheme struct {
	Frame  lipgloss.Style
	Prompt lipgloss.Style
	Text   lipgloss.Style
	Caret  lipgloss.Style
}

// OverviewTheme styles the inventory tree.
type OverviewTheme struct {
	Compartment lipgloss.Style
	Container   lipgloss.Style
	Item        lipgloss.Style
	Tag         lipgloss.Style
	ID          lipgloss.Style
	Enumerator  lipgloss.Style
	Empty       lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	return Theme{
		Header: HeaderTheme{
			Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Tab:       tab,
			ActiveTab: tab.Foreground(lipgloss.Color("212")).Reverse(true),
			Pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")),
			Body: lipgloss.NewStyle(),
		},
		Input: InputTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Text:   lipgloss.NewStyle(),
			Caret:  lipgloss.NewStyle().Reverse(true),
		},
		Overview: OverviewTheme{
			Compartment: lipgloss.NewStyle().Bold(true),
			Container:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			Item:        lipgloss.NewStyle(),
			Tag:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			ID:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Enumerator:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true),
		},
	}
}
