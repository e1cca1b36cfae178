package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/alexanderramin/leadflow/internal/scoring"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$999.50", Money(999.5))
	assert.Equal(t, "$80,000.00", Money(80000))
	assert.Equal(t, "$1,234,567.89", Money(1234567.891))
	assert.Equal(t, "-$1,000.00", Money(-1000))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Wareh…", Truncate("Warehouse move", 6))
	assert.Equal(t, "Zoë…", Truncate("Zoë Lambert", 4))
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderProgress(50, 10)))
	assert.Equal(t, "[██████████] 100%", stripANSI(RenderProgress(140, 10)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderProgress(-3, 1)))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "LONGER"},
		[][]string{{StyleRed.Render("xyz"), "1"}, {"q"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"A    LONGER",
		"───  ──────",
		"xyz  1",
		"q    ",
	}, lines)
}

func TestFormatLeadList(t *testing.T) {
	v := 80000.0
	leads := []*domain.Lead{{
		LeadNumber: "LEAD20260001", FirstName: "Dana", LastName: "Scully", Company: "FBI",
		Status: domain.LeadQualified, Score: 85, Rating: domain.RatingHot, Source: domain.SourceReferral,
		EstimatedValue: &v,
	}}
	out := stripANSI(FormatLeadList(leads, &query.Pagination{Page: 1, Limit: 10, Total: 11, TotalPages: 2, HasNext: true}))

	assert.Contains(t, out, "LEAD20260001")
	assert.Contains(t, out, "Dana Scully")
	assert.Contains(t, out, "● Qualified")
	assert.Contains(t, out, "● HOT")
	assert.Contains(t, out, "$80,000.00")
	assert.Contains(t, out, "page 1/2 · 11 total · next: --page 2")

	assert.Equal(t, "No leads found.\n", stripANSI(FormatLeadList(nil, nil)))
}

func TestFormatScore_ShowsCap(t *testing.T) {
	r := scoring.Explain(scoring.Input{
		Source: domain.SourceReferral, Budget: 150000, Timeline: domain.TimelineImmediate,
		DecisionMaker: true, Company: "Acme",
	})
	out := stripANSI(FormatScore(r))
	assert.Contains(t, out, "DECISION_MAKER")
	assert.Contains(t, out, "Score 100 ● HOT")
	assert.Contains(t, out, "(raw 105, capped)")
}

func TestFormatHistory(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	out := stripANSI(FormatHistory([]*domain.LifecycleEvent{
		{From: "", To: "new", ChangedBy: "system", ChangedAt: at, Reason: "created"},
		{From: "new", To: "contacted", ChangedBy: "rep-4", ChangedAt: at.Add(time.Hour)},
	}))
	assert.Contains(t, out, "∅ → new")
	assert.Contains(t, out, "new → contacted")
	assert.Contains(t, out, "2026-03-01 10:30")
}

func TestFormatActivityList_DimsFinishedDueDates(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	out := FormatActivityList([]*domain.Activity{
		{ID: "act_1", Type: domain.ActivityCall, Subject: "Call back", Status: domain.ActivityScheduled, DueDate: &past},
		{ID: "act_2", Type: domain.ActivityEmail, Subject: "Quote", Status: domain.ActivityCompleted, DueDate: &past},
	}, nil, now)

	assert.Contains(t, out, StyleRed.Render("2d ago"))
	assert.Contains(t, out, StyleDim.Render("2d ago"))
}

func TestFormatDashboard(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	stats := service.Aggregate(
		[]*domain.Lead{{Status: domain.LeadConverted, Source: domain.SourceWebsite, Score: 60, CreatedAt: now}},
		[]*domain.Opportunity{{Stage: domain.StageClosedWon, Amount: 12000, Probability: 100}},
		nil, now,
	)
	out := stripANSI(FormatDashboard(&stats))

	assert.Contains(t, out, "LEADS")
	assert.Contains(t, out, "PIPELINE")
	assert.Contains(t, out, "$12,000.00")
	assert.Contains(t, out, "✔ closed won")
	assert.Contains(t, out, "converted 1")
	assert.Equal(t, "No dashboard data.\n", stripANSI(FormatDashboard(nil)))
}
