package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

const probabilityBarWidth = 8

func FormatOpportunityList(opps []*domain.Opportunity, p *query.Pagination) string {
	if len(opps) == 0 {
		return Dim("No opportunities found.") + "\n"
	}

	headers := []string{"NUMBER", "NAME", "STAGE", "PROBABILITY", "AMOUNT", "CLOSE", "OWNER"}
	rows := make([][]string, 0, len(opps))
	for _, o := range opps {
		closeDate := o.ExpectedCloseDate
		if o.ActualCloseDate != nil {
			closeDate = o.ActualCloseDate
		}
		rows = append(rows, []string{
			o.DisplayID(),
			Bold(Truncate(o.Name, 36)),
			StagePill(o.Stage),
			RenderProgress(float64(o.Probability), probabilityBarWidth),
			Money(o.Amount),
			DateOrDash(closeDate),
			OrDash(o.Owner),
		})
	}
	return RenderTable(headers, rows) + PaginationFooter(p)
}

func FormatOpportunity(o *domain.Opportunity) string {
	pairs := [][2]string{
		{"Number", o.DisplayID()},
		{"Name", Bold(o.Name)},
		{"Stage", StagePill(o.Stage)},
		{"Probability", RenderProgress(float64(o.Probability), probabilityBarWidth)},
		{"Amount", Money(o.Amount)},
		{"Weighted", Money(o.WeightedAmount())},
		{"Expected close", DateOrDash(o.ExpectedCloseDate)},
		{"Actual close", DateOrDash(o.ActualCloseDate)},
		{"Owner", OrDash(o.Owner)},
		{"Lead", OrDash(o.LeadID)},
		{"Created", fmt.Sprintf("%s by %s", Timestamp(o.CreatedAt), o.CreatedBy)},
		{"Version", fmt.Sprintf("%d", o.Version)},
	}
	body := KeyValues(pairs)
	if o.Description != "" {
		body += "\n" + o.Description + "\n"
	}
	return RenderBox("Opportunity "+o.DisplayID(), body)
}

func FormatActivityList(acts []*domain.Activity, p *query.Pagination, now time.Time) string {
	if len(acts) == 0 {
		return Dim("No activities found.") + "\n"
	}

	headers := []string{"ID", "TYPE", "SUBJECT", "STATUS", "DUE", "LEAD", "OPPORTUNITY"}
	rows := make([][]string, 0, len(acts))
	for _, a := range acts {
		due := Dim("--")
		if a.DueDate != nil {
			due = DueStyled(*a.DueDate, now)
			if a.Status == domain.ActivityCompleted || a.Status == domain.ActivityCancelled {
				due = Dim(RelativeDateFrom(*a.DueDate, now))
			}
		}
		rows = append(rows, []string{
			Dim(a.ID),
			string(a.Type),
			Truncate(a.Subject, 40),
			ActivityStatusPill(a.Status),
			due,
			OrDash(a.LeadID),
			OrDash(a.OpportunityID),
		})
	}
	return RenderTable(headers, rows) + PaginationFooter(p)
}
