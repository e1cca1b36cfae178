package cli

import (
	"fmt"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/cli/formatter"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/spf13/cobra"
)

func newOpportunityCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opp",
		Aliases: []string{"opportunity", "opportunities"},
		Short:   "Manage opportunities",
	}

	cmd.AddCommand(
		newOppAddCmd(r),
		newOppListCmd(r),
		newOppShowCmd(r),
		newOppUpdateCmd(r),
		newOppStageCmd(r),
	)

	return cmd
}

func newOppAddCmd(r *runner) *cobra.Command {
	var name, leadID, stage, closeDate, owner, description string
	var amount float64
	var probability int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an opportunity",
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := parseDate("close-date", closeDate)
			if err != nil {
				return reject(cmd, r, err)
			}
			in := domain.Opportunity{
				Name:              name,
				Description:       description,
				LeadID:            leadID,
				Stage:             domain.OpportunityStage(stage),
				Amount:            amount,
				ExpectedCloseDate: expected,
				Owner:             owner,
			}
			if changed(cmd.Flags(), "probability") {
				in.Probability = probability
			}
			env := r.app.CRM.CreateOpportunity(cmd.Context(), in)
			return emit(cmd, r, env, formatOpportunitySummary)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Opportunity name")
	cmd.Flags().StringVar(&leadID, "lead", "", "Originating lead ID")
	cmd.Flags().StringVar(&stage, "stage", "", "Pipeline stage (default prospecting)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Deal amount")
	cmd.Flags().IntVar(&probability, "probability", 0, "Close probability 0-100 (default from stage)")
	cmd.Flags().StringVar(&closeDate, "close-date", "", "Expected close date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owning sales rep")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newOppListCmd(r *runner) *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List opportunities",
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := q.build()
			if err != nil {
				return reject(cmd, r, err)
			}
			env := r.app.CRM.GetOpportunities(cmd.Context(), built)
			return emit(cmd, r, env, func(opps []*domain.Opportunity) string {
				return formatter.FormatOpportunityList(opps, env.Pagination)
			})
		},
	}
	q.register(cmd.Flags())

	return cmd
}

func newOppShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := r.app.CRM.GetOpportunity(cmd.Context(), args[0])
			return emit(cmd, r, env, func(o *domain.Opportunity) string {
				return formatter.FormatOpportunity(o) + "\n"
			})
		},
	}
}

func newOppUpdateCmd(r *runner) *cobra.Command {
	var name, closeDate, owner, description string
	var amount float64
	var probability, version int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update opportunity fields",
		Long:  "Update only the fields whose flags are given. Use 'opp stage' to move through the pipeline.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			var patch domain.OpportunityPatch
			if changed(fs, "name") {
				patch.Name = &name
			}
			if changed(fs, "description") {
				patch.Description = &description
			}
			if changed(fs, "owner") {
				patch.Owner = &owner
			}
			if changed(fs, "amount") {
				patch.Amount = &amount
			}
			if changed(fs, "probability") {
				patch.Probability = &probability
			}
			if changed(fs, "version") {
				patch.Version = &version
			}
			if changed(fs, "close-date") {
				expected, err := parseDate("close-date", closeDate)
				if err != nil {
					return reject(cmd, r, err)
				}
				patch.ExpectedCloseDate = expected
			}
			env := r.app.CRM.UpdateOpportunity(cmd.Context(), args[0], patch)
			return emit(cmd, r, env, formatOpportunitySummary)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Opportunity name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Deal amount")
	cmd.Flags().IntVar(&probability, "probability", 0, "Close probability 0-100")
	cmd.Flags().StringVar(&closeDate, "close-date", "", "Expected close date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owning sales rep")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().IntVar(&version, "version", 0, "Expected current version (optimistic lock)")

	return cmd
}

func newOppStageCmd(r *runner) *cobra.Command {
	var reason string
	var probability int

	cmd := &cobra.Command{
		Use:   "stage <id> <stage>",
		Short: "Move an opportunity to another pipeline stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := app.StageChange{Stage: domain.OpportunityStage(args[1]), Reason: reason}
			if changed(cmd.Flags(), "probability") {
				in.Probability = &probability
			}
			env := r.app.CRM.MoveOpportunityStage(cmd.Context(), args[0], in)
			return emit(cmd, r, env, formatOpportunitySummary)
		},
	}
	cmd.Flags().IntVar(&probability, "probability", 0, "Override the stage's default probability")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the stage change")

	return cmd
}

func formatOpportunitySummary(o *domain.Opportunity) string {
	return fmt.Sprintf("%s  %s  %s  %s  %d%%\n",
		o.DisplayID(),
		formatter.Bold(o.Name),
		formatter.StagePill(o.Stage),
		formatter.Money(o.Amount),
		o.Probability,
	)
}
