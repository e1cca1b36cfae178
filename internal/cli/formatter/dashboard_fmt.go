package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/service"
)

const dashboardBarWidth = 12

// FormatDashboard renders the aggregate stats as three stacked sections.
func FormatDashboard(s *service.DashboardStats) string {
	if s == nil {
		return Dim("No dashboard data.") + "\n"
	}
	var b strings.Builder

	l := s.Leads
	b.WriteString(Header("Leads") + "\n")
	b.WriteString(KeyValues([][2]string{
		{"Total", Bold(fmt.Sprintf("%d", l.TotalLeads))},
		{"New this month", fmt.Sprintf("%d", l.NewLeads)},
		{"Qualified", fmt.Sprintf("%d", l.QualifiedLeads)},
		{"Converted", fmt.Sprintf("%d", l.ConvertedLeads)},
		{"Conversion rate", RenderProgress(l.ConversionRate, dashboardBarWidth)},
		{"Average score", fmt.Sprintf("%.2f", l.AverageScore)},
	}))
	if line := countsLine(l.ByStatus); line != "" {
		b.WriteString(Dim("by status  ") + line + "\n")
	}
	if line := countsLine(l.BySource); line != "" {
		b.WriteString(Dim("by source  ") + line + "\n")
	}

	o := s.Opportunities
	b.WriteString("\n" + Header("Pipeline") + "\n")
	b.WriteString(KeyValues([][2]string{
		{"Opportunities", Bold(fmt.Sprintf("%d", o.TotalOpportunities))},
		{"Total value", Money(o.TotalValue)},
		{"Average deal", Money(o.AverageDealSize)},
		{"Win rate", RenderProgress(o.WinRate, dashboardBarWidth)},
		{"Open pipeline", Money(o.OpenPipelineValue)},
		{"Weighted pipeline", Money(o.WeightedPipelineValue)},
	}))
	if len(o.ByStage) > 0 {
		rows := make([][]string, 0, len(o.ByStage))
		for _, stage := range domain.PipelineStages {
			sum, ok := o.ByStage[string(stage)]
			if !ok {
				continue
			}
			rows = append(rows, []string{StagePill(stage), fmt.Sprintf("%d", sum.Count), Money(sum.Value)})
		}
		b.WriteString("\n" + RenderTable([]string{"STAGE", "COUNT", "VALUE"}, rows))
	}

	a := s.Activities
	b.WriteString("\n" + Header("Activities") + "\n")
	overdue := fmt.Sprintf("%d", a.OverdueActivities)
	if a.OverdueActivities > 0 {
		overdue = StyleRed.Render(overdue)
	}
	b.WriteString(KeyValues([][2]string{
		{"Total", fmt.Sprintf("%d", a.TotalActivities)},
		{"Completed", fmt.Sprintf("%d", a.CompletedActivities)},
		{"Overdue", overdue},
	}))

	b.WriteString("\n" + Dim("generated "+Timestamp(s.GeneratedAt)))
	return RenderBox("Dashboard", b.String())
}

// countsLine renders a count map as "a 3 · b 1", largest first.
func countsLine(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k, n := range counts {
		if n > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %d", k, counts[k])
	}
	return strings.Join(parts, " · ")
}
