package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorInk       = lipgloss.Color("#E5E9F0")
	ColorDim       = lipgloss.Color("#7A8291")
	ColorAccent    = lipgloss.Color("#88C0D0")
	ColorAccentAlt = lipgloss.Color("#81A1C1")
	ColorSuccess   = lipgloss.Color("#A3BE8C")
	ColorWarn      = lipgloss.Color("#EBCB8B")
	ColorError     = lipgloss.Color("#BF616A")
)

// FrameSwatches stands in for a color picker: the interactive view cycles
// through these when the user asks for another frame color.
var FrameSwatches = []string{
	"#000000",
	"#ffffff",
	"#2e3440",
	"#bf616a",
	"#d08770",
	"#ebcb8b",
	"#a3be8c",
	"#88c0d0",
	"#5e81ac",
	"#b48ead",
}

// NextSwatch returns the swatch after current, or the first one when current
// is not in the list.
func NextSwatch(current string) string {
	for i, c := range FrameSwatches {
		if c == current {
			return FrameSwatches[(i+1)%len(FrameSwatches)]
		}
	}
	return FrameSwatches[0]
}
