package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pokespeare/pkg/integrations/pokeapi"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - legendary
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleLegendary marks legendary species.
	StyleLegendary = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleDescription = lipgloss.NewStyle().Foreground(colorWhite).Width(72).PaddingLeft(2)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message to w.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message to w.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// =============================================================================
// Species Output
// =============================================================================

// keyValue renders a labeled value.
func keyValue(key, value string) string {
	return styleKey.Render(key) + " " + StyleValue.Render(value)
}

// renderSpecies formats a species record for the terminal. dialect is shown
// only when non-empty.
func renderSpecies(info *pokeapi.SpeciesInfo, dialect string) string {
	title := StyleTitle.Render(info.Name)
	if info.IsLegendary {
		title += " " + StyleLegendary.Render("★ legendary")
	}

	habitat := info.Habitat
	if habitat == "" {
		habitat = "unknown"
	}

	lines := []string{title, keyValue("habitat", habitat)}
	if dialect != "" {
		lines = append(lines, keyValue("dialect", dialect))
	}
	lines = append(lines, "", styleDescription.Render(info.Description))
	return strings.Join(lines, "\n")
}
