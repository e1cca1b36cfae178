package cli

import (
	"fmt"

	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/spf13/cobra"
)

func newActivityCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"activities", "act"},
		Short:   "Log and track activities",
	}

	cmd.AddCommand(
		newActivityLogCmd(r),
		newActivityListCmd(r),
		newActivityStatusCmd(r),
	)

	return cmd
}

func newActivityLogCmd(r *runner) *cobra.Command {
	var actType, subject, description, leadID, oppID, due, status string

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Log an activity against a lead or opportunity",
		Example: "  leadflow activity log --type call --subject \"Intro call\" --lead <lead-id> --due 2026-07-01",
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDate("due", due)
			if err != nil {
				return reject(cmd, r, err)
			}
			env := r.app.CRM.LogActivity(cmd.Context(), domain.Activity{
				Type:          domain.ActivityType(actType),
				Subject:       subject,
				Description:   description,
				LeadID:        leadID,
				OpportunityID: oppID,
				Status:        domain.ActivityStatus(status),
				DueDate:       dueDate,
			})
			return emit(cmd, r, env, formatActivitySummary)
		},
	}
	cmd.Flags().StringVar(&actType, "type", "", "Activity type (call, email, meeting, note, task)")
	cmd.Flags().StringVar(&subject, "subject", "", "Short subject line")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&leadID, "lead", "", "Lead ID")
	cmd.Flags().StringVar(&oppID, "opp", "", "Opportunity ID")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default scheduled)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func newActivityListCmd(r *runner) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := q.build()
			if err != nil {
				return reject(cmd, r, err)
			}
			env := r.app.CRM.GetActivities(cmd.Context(), built)
			return emit(cmd, r, env, func(acts []*domain.Activity) string {
				return formatter.FormatActivityList(acts, env.Pagination, r.app.now())
			})
		},
	}
	q.register(cmd.Flags())

	return cmd
}

func newActivityStatusCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change an activity's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.UpdateActivityStatus(cmd.Context(), args[0], domain.ActivityStatus(args[1]))
			return emit(cmd, r, env, formatActivitySummary)
		},
	}
}

func formatActivitySummary(a *domain.Activity) string {
	return fmt.Sprintf("%s  %s  %s  %s\n",
		formatter.Dim(a.ID),
		a.Type,
		formatter.Bold(a.Subject),
		formatter.ActivityStatusPill(a.Status),
	)
}
