package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette
var (
	Primary     = lipgloss.Color("#0EA5E9")
	Accent      = lipgloss.Color("#10B981")
	Muted       = lipgloss.Color("#94A3B8")
	Border      = lipgloss.Color("#CBD5E1")
	Destructive = lipgloss.Color("#EF4444")
	Warning     = lipgloss.Color("#F59E0B")
)

// Styles holds the styled components of every screen
type Styles struct {
	IsDark bool

	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	Label       lipgloss.Style
	Focused     lipgloss.Style
	Option      lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	ProgressFill  lipgloss.Style
	ProgressEmpty lipgloss.Style
	Spinner       lipgloss.Style

	Notice lipgloss.Style
	Error  lipgloss.Style
	Card   lipgloss.Style
}

// NewStyles builds the style set; dark switches the text palette for dark terminals
func NewStyles(dark bool) Styles {
	fg := lipgloss.Color("#0F172A")
	if dark {
		fg = lipgloss.Color("#F1F5F9")
	}

	return Styles{
		IsDark: dark,

		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			MarginTop(1),

		Title: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginBottom(1),

		Body: lipgloss.NewStyle().
			Foreground(fg),

		Muted: lipgloss.NewStyle().
			Foreground(Muted),

		Label: lipgloss.NewStyle().
			Foreground(fg).
			Width(24),

		Focused: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Width(24),

		Option: lipgloss.NewStyle().
			Foreground(fg).
			PaddingLeft(2),

		Selected: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			PaddingLeft(2),

		Description: lipgloss.NewStyle().
			Foreground(Muted).
			PaddingLeft(6),

		Tab: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(Accent).
			Bold(true).
			Padding(0, 1),

		ProgressFill: lipgloss.NewStyle().
			Foreground(Accent),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(Border),

		Spinner: lipgloss.NewStyle().
			Foreground(Accent),

		Notice: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2),
	}
}

// DetectDark reports whether the terminal asked for a dark palette
func DetectDark() bool {
	if os.Getenv("HEALTHPATH_DARK_MODE") == "1" {
		return true
	}
	return lipgloss.HasDarkBackground()
}
