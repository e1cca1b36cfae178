package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RatingColor returns the style for a lead rating band.
func RatingColor(r domain.LeadRating) lipgloss.Style {
	switch r {
	case domain.RatingHot:
		return StyleRed
	case domain.RatingWarm:
		return StyleYellow
	case domain.RatingCold:
		return StyleBlue
	default:
		return StyleDim
	}
}

// RatingIndicator renders a rating such as "● HOT".
func RatingIndicator(r domain.LeadRating) string {
	if r == "" {
		return StyleDim.Render("● --")
	}
	return RatingColor(r).Render("● " + strings.ToUpper(string(r)))
}

// ScoreStyled colors a score by the rating band it falls into.
func ScoreStyled(score int) string {
	return RatingColor(domain.RatingForScore(score)).Render(fmt.Sprintf("%3d", score))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
