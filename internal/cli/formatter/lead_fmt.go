package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/scoring"
)

// FormatLeadList renders one page of leads followed by a pagination footer.
func FormatLeadList(leads []*domain.Lead, p *query.Pagination) string {
	if len(leads) == 0 {
		return Dim("No leads found.") + "\n"
	}

	headers := []string{"NUMBER", "NAME", "COMPANY", "STATUS", "SCORE", "RATING", "SOURCE", "VALUE"}
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			l.DisplayID(),
			Bold(Truncate(l.FullName(), 28)),
			OrDash(Truncate(l.Company, 24)),
			LeadStatusPill(l.Status),
			ScoreStyled(l.Score),
			RatingIndicator(l.Rating),
			string(l.Source),
			MoneyOrDash(l.EstimatedValue),
		})
	}
	return RenderTable(headers, rows) + PaginationFooter(p)
}

// PaginationFooter renders "page 2/5 · 48 total".
func PaginationFooter(p *query.Pagination) string {
	if p == nil {
		return ""
	}
	pages := p.TotalPages
	if pages == 0 {
		pages = 1
	}
	line := fmt.Sprintf("page %d/%d · %d total", p.Page, pages, p.Total)
	if p.HasNext {
		line += fmt.Sprintf(" · next: --page %d", p.Page+1)
	}
	return "\n" + Dim(line) + "\n"
}

// FormatLeadDetail renders a lead and its activity timeline.
func FormatLeadDetail(l *domain.Lead, timeline []*domain.Activity) string {
	var b strings.Builder

	pairs := [][2]string{
		{"Number", l.DisplayID()},
		{"Name", Bold(l.FullName())},
		{"Email", l.Email},
		{"Phone", l.Phone},
		{"Company", OrDash(l.Company)},
		{"Status", LeadStatusPill(l.Status)},
		{"Score", fmt.Sprintf("%s %s", ScoreStyled(l.Score), RatingIndicator(l.Rating))},
		{"Source", string(l.Source)},
		{"Budget", Money(l.Budget)},
		{"Timeline", OrDash(string(l.Timeline))},
		{"Decision maker", yesNo(l.DecisionMaker)},
		{"Estimated value", MoneyOrDash(l.EstimatedValue)},
		{"Assigned to", OrDash(l.AssignedTo)},
	}
	if l.MoveFrom != "" || l.MoveTo != "" {
		pairs = append(pairs, [2]string{"Move", fmt.Sprintf("%s → %s", OrDash(l.MoveFrom), OrDash(l.MoveTo))})
	}
	if l.MoveDate != nil {
		pairs = append(pairs, [2]string{"Move date", DateOrDash(l.MoveDate)})
	}
	if len(l.Tags) > 0 {
		pairs = append(pairs, [2]string{"Tags", StylePurple.Render(strings.Join(l.Tags, ", "))})
	}
	if l.Status == domain.LeadConverted {
		pairs = append(pairs,
			[2]string{"Converted", DateOrDash(l.ConvertedAt)},
			[2]string{"Opportunity", OrDash(l.OpportunityID)},
			[2]string{"Conversion value", MoneyOrDash(l.ConversionValue)},
		)
	}
	pairs = append(pairs,
		[2]string{"Last contact", DateOrDash(l.LastContactedAt)},
		[2]string{"Created", fmt.Sprintf("%s by %s", Timestamp(l.CreatedAt), l.CreatedBy)},
		[2]string{"Version", fmt.Sprintf("%d", l.Version)},
	)
	b.WriteString(KeyValues(pairs))

	if strings.TrimSpace(l.Notes) != "" {
		b.WriteString("\n" + Header("Notes") + "\n" + l.Notes + "\n")
	}

	b.WriteString("\n" + Header("Timeline") + "\n")
	if len(timeline) == 0 {
		b.WriteString(Dim("No activities yet.") + "\n")
	}
	for _, a := range timeline {
		b.WriteString(fmt.Sprintf("%s  %-19s %s\n", Dim(Timestamp(a.CreatedAt)), a.Type, a.Subject))
	}

	return RenderBox("Lead "+l.DisplayID(), b.String())
}

// FormatScore renders a score preview with its factor breakdown.
func FormatScore(r scoring.Result) string {
	var b strings.Builder
	rows := make([][]string, 0, len(r.Factors))
	for _, f := range r.Factors {
		rows = append(rows, []string{string(f.Code), f.Message, fmt.Sprintf("+%d", f.Points)})
	}
	b.WriteString(RenderTable([]string{"FACTOR", "DETAIL", "POINTS"}, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Score %s %s", ScoreStyled(r.Score), RatingIndicator(r.Rating)))
	if r.Raw != r.Score {
		b.WriteString(Dim(fmt.Sprintf("  (raw %d, capped)", r.Raw)))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatHistory renders lifecycle events oldest first.
func FormatHistory(events []*domain.LifecycleEvent) string {
	if len(events) == 0 {
		return Dim("No history.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		from := e.From
		if from == "" {
			from = "∅"
		}
		rows = append(rows, []string{
			Timestamp(e.ChangedAt),
			fmt.Sprintf("%s → %s", Dim(from), Bold(e.To)),
			e.ChangedBy,
			OrDash(e.Reason),
		})
	}
	return RenderTable([]string{"WHEN", "CHANGE", "BY", "REASON"}, rows)
}

func yesNo(v bool) string {
	if v {
		return StyleGreen.Render("yes")
	}
	return Dim("no")
}
