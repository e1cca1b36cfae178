package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly date relative to now.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DueStyled colors a due date: overdue and the next two days red, the week
// ahead yellow.
func DueStyled(t time.Time, now time.Time) string {
	text := RelativeDateFrom(t, now)
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DateOrDash renders an optional date as YYYY-MM-DD.
func DateOrDash(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format("2006-01-02")
}

func Timestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// Money renders an amount with thousands separators and two decimals,
// e.g. $80,000.00.
func Money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func MoneyOrDash(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return Money(*v)
}

func LeadStatusPill(s domain.LeadStatus) string {
	switch s {
	case domain.LeadNew:
		return StyleBlue.Render("○ New")
	case domain.LeadContacted:
		return StyleFg.Render("◐ Contacted")
	case domain.LeadQualified:
		return StyleGreen.Render("● Qualified")
	case domain.LeadProposalSent:
		return StyleYellow.Render("◑ Proposal Sent")
	case domain.LeadNegotiation:
		return StyleYellow.Render("◕ Negotiation")
	case domain.LeadNurturing:
		return StyleYellow.Render("◌ Nurturing")
	case domain.LeadConverted:
		return StylePurple.Render("✔ Converted")
	case domain.LeadLost:
		return StyleDim.Render("✖ Lost")
	default:
		return StyleDim.Render(string(s))
	}
}

func StagePill(s domain.OpportunityStage) string {
	label := strings.ReplaceAll(string(s), "_", " ")
	switch s {
	case domain.StageClosedWon:
		return StyleGreen.Render("✔ " + label)
	case domain.StageClosedLost:
		return StyleDim.Render("✖ " + label)
	case domain.StageNegotiation, domain.StageProposal:
		return StyleYellow.Render("● " + label)
	default:
		return StyleBlue.Render("○ " + label)
	}
}

func ActivityStatusPill(s domain.ActivityStatus) string {
	switch s {
	case domain.ActivityScheduled:
		return StyleBlue.Render("○ Scheduled")
	case domain.ActivityInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.ActivityCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ActivityCancelled:
		return StyleDim.Render("⊘ Cancelled")
	default:
		return StyleDim.Render(string(s))
	}
}

// Truncate shortens s to max runes, ending in an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
